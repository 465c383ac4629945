package risk

import (
	"fmt"

	"ProbabilityPit/internal/domain/models"
	"ProbabilityPit/pkg/util"
)

// Default form values shown on first load.
const (
	DefaultYesPrice = "0.60"
	DefaultNoPrice  = "0.45"
	DefaultEstimate = "0.65"
	DefaultBankroll = "1000"
)

// NewWizard returns the initial wizard state.
func NewWizard() models.WizardState {
	return models.WizardState{
		Step: models.StepMarketData,
		Fields: models.RiskFields{
			YesPrice: DefaultYesPrice,
			NoPrice:  DefaultNoPrice,
			Estimate: DefaultEstimate,
			Bankroll: DefaultBankroll,
		},
	}
}

// Reduce applies one action to the state. field and value are only used by ActionSet.
// On error the input state is returned unchanged.
func Reduce(s models.WizardState, action models.WizardAction, field, value string) (models.WizardState, error) {
	switch action {
	case models.ActionNext:
		s.Step = min(s.Step+1, models.StepBlueprint)
	case models.ActionBack:
		s.Step = max(s.Step-1, models.StepMarketData)
	case models.ActionReset:
		s.Step = models.StepMarketData
	case models.ActionSet:
		return setField(s, field, value)
	default:
		return s, fmt.Errorf("unknown wizard action %q", action)
	}
	return s, nil
}

func setField(s models.WizardState, field, value string) (models.WizardState, error) {
	switch field {
	case "yes":
		s.Fields.YesPrice = value
	case "no":
		s.Fields.NoPrice = value
	case "estimate":
		s.Fields.Estimate = value
	case "bankroll":
		s.Fields.Bankroll = value
	default:
		return s, fmt.Errorf("unknown wizard field %q", field)
	}
	return s, nil
}

// ClampStep coerces an arbitrary step number into the valid range.
func ClampStep(step int) models.WizardStep {
	return min(max(models.WizardStep(step), models.StepMarketData), models.StepBlueprint)
}

// Progress is the completion percentage of the step bar.
func Progress(step models.WizardStep) float64 {
	return float64(step-models.StepMarketData) / float64(models.StepBlueprint-models.StepMarketData) * 100
}

// Input parses the form strings the way the browser did: bad or empty numbers become 0.
func Input(f models.RiskFields) models.RiskInput {
	return models.RiskInput{
		YesPrice: util.ParseFloatOrZero(f.YesPrice),
		NoPrice:  util.ParseFloatOrZero(f.NoPrice),
		Estimate: util.ParseFloatOrZero(f.Estimate),
		Bankroll: util.ParseFloatOrZero(f.Bankroll),
	}
}

// Snapshot builds the payload pushed to clients for a given state and its report.
func Snapshot(session string, s models.WizardState, report models.RiskReport) models.WizardSnapshot {
	return models.WizardSnapshot{
		Session:  session,
		Step:     s.Step,
		Progress: Progress(s.Step),
		Fields:   s.Fields,
		Report:   &report,
	}
}
