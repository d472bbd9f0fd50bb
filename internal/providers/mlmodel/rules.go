package mlmodel

import (
	"context"

	"github.com/loanpilot/backend/internal/scoring"
)

// RulesModel is the local additive-scoring model. It is the default and the
// fallback whenever the remote endpoint is unreachable.
type RulesModel struct{}

func NewRulesModel() *RulesModel { return &RulesModel{} }

func (m *RulesModel) Predict(_ context.Context, f scoring.Features) (scoring.Prediction, error) {
	return scoring.Score(f), nil
}
