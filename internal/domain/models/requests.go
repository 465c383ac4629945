package models

// Requests for the HTTP endpoints. Defined in domain for consistency and reuse.

// RiskRequest carries the raw calculator fields; nothing is validated, bad numbers become 0.
type RiskRequest struct {
	YesPrice string `query:"yes" form:"yes" json:"yes"`
	NoPrice  string `query:"no" form:"no" json:"no"`
	Estimate string `query:"estimate" form:"estimate" json:"estimate"`
	Bankroll string `query:"bankroll" form:"bankroll" json:"bankroll"`
}

// Fields converts the request to wizard fields.
func (r *RiskRequest) Fields() RiskFields {
	return RiskFields{YesPrice: r.YesPrice, NoPrice: r.NoPrice, Estimate: r.Estimate, Bankroll: r.Bankroll}
}

// ModuleRequest selects a lesson.
type ModuleRequest struct {
	ID   int    `param:"id" json:"id" validate:"gte=1"`
	View string `query:"view" json:"view" default:"full" validate:"oneof=full guide script"`
}

// WizardMessage is a client frame on the websocket wizard.
type WizardMessage struct {
	Type  string `json:"type" validate:"required,oneof=set next back reset"`
	Field string `json:"field" validate:"required_if=Type set,omitempty,oneof=yes no estimate bankroll"`
	Value string `json:"value"`
}
