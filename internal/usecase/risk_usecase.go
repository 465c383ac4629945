package usecase

import (
	"time"

	"ProbabilityPit/internal/domain/models"
	domrepo "ProbabilityPit/internal/domain/repository"
	"ProbabilityPit/internal/services/risk"
)

// RiskUsecase evaluates calculator input coming from forms, JSON or the websocket wizard.
type RiskUsecase struct {
	metrics domrepo.Metrics
}

func NewRiskUsecase(metrics domrepo.Metrics) *RiskUsecase {
	return &RiskUsecase{metrics: metrics}
}

// Evaluate parses raw field strings (bad numbers become 0) and builds the report.
func (u *RiskUsecase) Evaluate(fields models.RiskFields) models.RiskReport {
	start := time.Now()
	rep := risk.Evaluate(risk.Input(fields))
	u.metrics.RecordCalculation(rep.Result.IsProfitable)
	u.metrics.RecordLatency("risk_evaluate", time.Since(start).Seconds())
	return rep
}

// Snapshot applies the current wizard state and records the calculation.
func (u *RiskUsecase) Snapshot(session string, s models.WizardState) models.WizardSnapshot {
	return risk.Snapshot(session, s, u.Evaluate(s.Fields))
}
