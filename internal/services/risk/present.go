package risk

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"ProbabilityPit/internal/domain/models"
)

// Display precision per field.
const (
	percentPlaces = 1
	sizePlaces    = 2
	evPlaces      = 3
)

// Indicator thresholds, in display units.
const (
	eliteEdgePoints = 10.0
	lowVigPercent   = 4.0
	fairVigPercent  = 7.0
)

// Round returns r with every numeric field rounded to its display precision.
// IsProfitable is carried over untouched.
func Round(r models.RiskResult) models.RiskResult {
	return models.RiskResult{
		VigPercent:    roundTo(r.VigPercent, percentPlaces),
		DeVigged:      roundTo(r.DeVigged, percentPlaces),
		EdgePoints:    roundTo(r.EdgePoints, percentPlaces),
		KellyPercent:  roundTo(r.KellyPercent, percentPlaces),
		SuggestedSize: roundTo(r.SuggestedSize, sizePlaces),
		ExpectedValue: roundTo(r.ExpectedValue, evPlaces),
		IsProfitable:  r.IsProfitable,
	}
}

func roundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Format renders v with a fixed number of decimals, the way the UI prints numbers.
func Format(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatPercent formats a percentage field.
func FormatPercent(v float64) string { return Format(v, percentPlaces) }

// FormatSize formats a stake amount.
func FormatSize(v float64) string { return Format(v, sizePlaces) }

// FormatEV formats an expected value.
func FormatEV(v float64) string { return Format(v, evPlaces) }

// Indicators builds the three status badges from a rounded result.
func Indicators(r models.RiskResult) []models.Indicator {
	edge := models.Indicator{
		Label:   "Information Edge",
		Value:   FormatPercent(r.EdgePoints) + " pts",
		Status:  "Negative",
		Variant: models.VariantDanger,
	}
	switch {
	case r.EdgePoints > eliteEdgePoints:
		edge.Status, edge.Variant = "Elite", models.VariantSuccess
	case r.EdgePoints > 0:
		edge.Status, edge.Variant = "Active", models.VariantSuccess
	}

	vig := models.Indicator{
		Label:   "Vig Resistance",
		Value:   FormatPercent(r.VigPercent) + "%",
		Status:  "Toxic",
		Variant: models.VariantDanger,
	}
	switch {
	case r.VigPercent < lowVigPercent:
		vig.Status, vig.Variant = "Low", models.VariantPrimary
	case r.VigPercent < fairVigPercent:
		vig.Status, vig.Variant = "Fair", models.VariantPrimary
	}

	return []models.Indicator{
		edge,
		vig,
		{Label: "Volatility Index", Value: "Medium", Status: "Standard", Variant: models.VariantMuted},
	}
}

// Judge produces the headline verdicts from a rounded result.
func Judge(r models.RiskResult) models.Verdict {
	v := models.Verdict{
		VigHigh:      r.VigPercent > fairVigPercent,
		EdgePositive: r.EdgePoints > 0,
		EVPositive:   r.ExpectedValue > 0,
		EdgeHeadline: "No Statistical Advantage",
		ActionLabel:  "Setup Not Recommended",
	}
	if v.EdgePositive {
		v.EdgeHeadline = "+EV Setup Detected"
	}
	if r.IsProfitable {
		v.ActionLabel = "Execute Tactical Trade"
	}
	return v
}

// Evaluate runs the calculator and builds the full report for display.
func Evaluate(in models.RiskInput) models.RiskReport {
	raw := Calculate(in)
	rounded := Round(raw)
	return models.RiskReport{
		Input:      in,
		Raw:        raw,
		Result:     rounded,
		Kelly:      KellyBreakdown(in.YesPrice, in.Estimate),
		Indicators: Indicators(rounded),
		Verdict:    Judge(rounded),
	}
}

// Finite reports whether every number in the report can be encoded as JSON.
func Finite(rep models.RiskReport) bool {
	in, r, k := rep.Input, rep.Raw, rep.Kelly
	for _, v := range []float64{
		in.YesPrice, in.NoPrice, in.Estimate, in.Bankroll,
		r.VigPercent, r.DeVigged, r.EdgePoints, r.KellyPercent, r.SuggestedSize, r.ExpectedValue,
		k.Odds, k.LossProb, k.FullKelly, k.QuarterKelly,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
