package models

// RiskInput is the four numbers the calculator works on.
type RiskInput struct {
	YesPrice float64 `json:"yes_price"`
	NoPrice  float64 `json:"no_price"`
	Estimate float64 `json:"estimate"`
	Bankroll float64 `json:"bankroll"`
}

// RiskResult holds the derived figures. Percent fields are already scaled by 100.
// Values are unrounded unless produced by risk.Round.
type RiskResult struct {
	VigPercent    float64 `json:"vig_percent"`
	DeVigged      float64 `json:"de_vigged"`
	EdgePoints    float64 `json:"edge_points"`
	KellyPercent  float64 `json:"kelly_percent"`
	SuggestedSize float64 `json:"suggested_size"`
	ExpectedValue float64 `json:"expected_value"`
	IsProfitable  bool    `json:"is_profitable"`
}

// Kelly is the intermediate sizing math, kept for display.
type Kelly struct {
	Odds         float64 `json:"odds"`
	LossProb     float64 `json:"loss_prob"`
	FullKelly    float64 `json:"full_kelly"`
	QuarterKelly float64 `json:"quarter_kelly"`
}

// Variant selects the colour treatment of a badge or indicator.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantPrimary Variant = "primary"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantMuted   Variant = "muted"
)

// Indicator is a labelled value with a status badge.
type Indicator struct {
	Label   string  `json:"label"`
	Value   string  `json:"value"`
	Status  string  `json:"status"`
	Variant Variant `json:"variant"`
}

// Verdict summarises the rounded result for the UI.
type Verdict struct {
	VigHigh      bool   `json:"vig_high"`
	EdgePositive bool   `json:"edge_positive"`
	EdgeHeadline string `json:"edge_headline"`
	EVPositive   bool   `json:"ev_positive"`
	ActionLabel  string `json:"action_label"`
}

// RiskReport is everything the UI or API shows for one set of inputs.
type RiskReport struct {
	Input      RiskInput   `json:"input"`
	Raw        RiskResult  `json:"raw"`
	Result     RiskResult  `json:"result"`
	Kelly      Kelly       `json:"kelly"`
	Indicators []Indicator `json:"indicators"`
	Verdict    Verdict     `json:"verdict"`
}
