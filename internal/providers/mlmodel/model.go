package mlmodel

import (
	"context"

	"github.com/loanpilot/backend/internal/scoring"
)

// EligibilityModel produces an eligibility prediction for a feature set.
type EligibilityModel interface {
	Predict(ctx context.Context, f scoring.Features) (scoring.Prediction, error)
}
