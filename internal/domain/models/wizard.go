package models

// WizardStep is the position of the three-step risk wizard.
type WizardStep int

const (
	StepMarketData WizardStep = 1
	StepEdgeCalc   WizardStep = 2
	StepBlueprint  WizardStep = 3
)

// Label returns the caption shown under the step dot.
func (s WizardStep) Label() string {
	switch s {
	case StepMarketData:
		return "Market Data"
	case StepEdgeCalc:
		return "Edge Calc"
	case StepBlueprint:
		return "Risk Blueprint"
	default:
		return ""
	}
}

// WizardAction names a transition of the wizard.
type WizardAction string

const (
	ActionNext  WizardAction = "next"
	ActionBack  WizardAction = "back"
	ActionReset WizardAction = "reset"
	ActionSet   WizardAction = "set"
)

// RiskFields are the raw form strings as typed by the user.
type RiskFields struct {
	YesPrice string `json:"yes"`
	NoPrice  string `json:"no"`
	Estimate string `json:"estimate"`
	Bankroll string `json:"bankroll"`
}

// WizardState is the full UI state of the risk wizard.
type WizardState struct {
	Step   WizardStep `json:"step"`
	Fields RiskFields `json:"fields"`
}

// WizardSnapshot is sent to websocket clients after every change.
type WizardSnapshot struct {
	Session  string      `json:"session"`
	Step     WizardStep  `json:"step"`
	Progress float64     `json:"progress"`
	Fields   RiskFields  `json:"fields"`
	Report   *RiskReport `json:"report"`
}
