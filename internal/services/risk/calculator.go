package risk

import "ProbabilityPit/internal/domain/models"

const (
	// kellyFraction scales full Kelly down to quarter Kelly.
	kellyFraction = 4.0
	// maxStakeFraction caps a single position at 10% of bankroll.
	maxStakeFraction = 0.1
)

// CalculateRisk derives vig, fair probability, edge, stake and EV from a two-sided quote.
// Inputs are not validated; any float64 produces a result. Values are unrounded, see Round.
func CalculateRisk(yesPrice, noPrice, estimate, bankroll float64) models.RiskResult {
	sum := yesPrice + noPrice

	vig := 0.0
	deVigged := 0.0
	if sum > 0 {
		vig = sum - 1
		deVigged = yesPrice / sum
	}
	edge := estimate - deVigged

	k := KellyBreakdown(yesPrice, estimate)
	stake := clamp(k.QuarterKelly, 0, maxStakeFraction) * bankroll

	q := 1 - estimate
	ev := estimate*(1-yesPrice) - q*yesPrice

	return models.RiskResult{
		VigPercent:    vig * 100,
		DeVigged:      deVigged * 100,
		EdgePoints:    edge * 100,
		KellyPercent:  k.QuarterKelly * 100,
		SuggestedSize: stake,
		ExpectedValue: ev,
		IsProfitable:  ev > 0 && edge > vig*0.5,
	}
}

// Calculate is CalculateRisk over a RiskInput.
func Calculate(in models.RiskInput) models.RiskResult {
	return CalculateRisk(in.YesPrice, in.NoPrice, in.Estimate, in.Bankroll)
}

// KellyBreakdown returns the Kelly sizing steps for buying YES at yesPrice.
func KellyBreakdown(yesPrice, estimate float64) models.Kelly {
	b := 0.0
	if yesPrice > 0 {
		b = (1 - yesPrice) / yesPrice
	}
	q := 1 - estimate

	full := 0.0
	if b > 0 && estimate > 0 {
		full = (b*estimate - q) / b
	}
	return models.Kelly{
		Odds:         b,
		LossProb:     q,
		FullKelly:    full,
		QuarterKelly: full / kellyFraction,
	}
}

// clamp keeps v in [lo, hi]. NaN stays NaN.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
