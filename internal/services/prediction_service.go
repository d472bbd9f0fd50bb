package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/loanpilot/backend/internal/models"
	"github.com/loanpilot/backend/internal/providers/mlmodel"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/scoring"
	"github.com/loanpilot/backend/internal/utils"
)

const (
	msgEligible    = "Congratulations! You are eligible for the loan."
	msgNeedsReview = "Your application needs further review. Consider improving your credit score or reducing existing EMIs."
)

type PredictionOutcome struct {
	EligibilityScore float64
	Eligible         bool
	Message          string
	Factors          []scoring.Factor
}

type PredictionService interface {
	Predict(ctx context.Context, sessionID string) (PredictionOutcome, error)
}

type predictionService struct {
	apps  pgrepo.ApplicationRepo
	model mlmodel.EligibilityModel
}

func NewPredictionService(apps pgrepo.ApplicationRepo, model mlmodel.EligibilityModel) PredictionService {
	return &predictionService{apps: apps, model: model}
}

// Predict scores the application and records the outcome. Missing features
// score as zero, same as an applicant who never reached that part of the
// flow.
func (s *predictionService) Predict(ctx context.Context, sessionID string) (PredictionOutcome, error) {
	const op = "PredictionService.Predict"

	if sessionID == "" {
		return PredictionOutcome{}, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	app, err := s.apps.GetBySessionID(ctx, sessionID)
	if errors.Is(err, utils.ErrNotFound) {
		return PredictionOutcome{}, utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return PredictionOutcome{}, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	prediction, err := s.model.Predict(ctx, featuresFor(app))
	if err != nil {
		return PredictionOutcome{}, utils.E(utils.CodeInternal, op, "prediction failed", err)
	}

	explanation, err := json.Marshal(prediction.Factors)
	if err != nil {
		return PredictionOutcome{}, utils.E(utils.CodeInternal, op, "failed to encode explanation", err)
	}

	status := models.StatusNeedsReview
	if prediction.Eligible {
		status = models.StatusEligible
	}

	err = s.apps.UpdateBySessionID(ctx, sessionID, map[string]any{
		"eligibility_score": prediction.EligibilityScore,
		"shap_explanation":  explanation,
		"final_status":      status,
		"updated_at":        time.Now().UTC(),
	})
	if err != nil {
		return PredictionOutcome{}, utils.E(utils.CodeInternal, op, "failed to record prediction", err)
	}

	message := msgNeedsReview
	if prediction.Eligible {
		message = msgEligible
	}

	return PredictionOutcome{
		EligibilityScore: prediction.EligibilityScore,
		Eligible:         prediction.Eligible,
		Message:          message,
		Factors:          prediction.Factors,
	}, nil
}

func featuresFor(app *models.Application) scoring.Features {
	f := scoring.Features{}
	if app.CreditScore != nil {
		f.CreditScore = *app.CreditScore
	}
	if app.IncomeExtracted != nil {
		f.Income = *app.IncomeExtracted
	}
	if app.LoanAmount != nil {
		f.LoanAmount = *app.LoanAmount
	}
	if app.EMIDetected != nil {
		f.EMI = *app.EMIDetected
	}
	if app.EmploymentType != nil {
		f.EmploymentType = *app.EmploymentType
	}
	return f
}
