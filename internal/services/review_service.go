package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/loanpilot/backend/internal/cache"
	"github.com/loanpilot/backend/internal/models"
	"github.com/loanpilot/backend/internal/notify"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/utils"
)

const applicationsCacheKey = "manager:applications"

// ApplicationSummary is the listing row shown on the review dashboard.
type ApplicationSummary struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	Name          *string   `json:"name"`
	IncomeClaimed *float64  `json:"income_claimed"`
	LoanAmount    *float64  `json:"loan_amount"`
	CreditScore   *int      `json:"credit_score"`
	FinalStatus   string    `json:"final_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ApplicationDetail is the review view of one application: the record plus
// the full conversation transcript.
type ApplicationDetail struct {
	Application *models.Application  `json:"application"`
	ChatHistory []models.ChatMessage `json:"chat_history"`
}

type ReviewService interface {
	List(ctx context.Context) ([]ApplicationSummary, error)
	Detail(ctx context.Context, applicationID string) (*ApplicationDetail, error)
	Approve(ctx context.Context, applicationID, managerEmail string) error
	Reject(ctx context.Context, applicationID, managerEmail string) error
}

type reviewService struct {
	apps     pgrepo.ApplicationRepo
	history  pgrepo.ChatHistoryRepo
	cache    cache.Cache
	notifier notify.Notifier
	cacheTTL time.Duration
	log      *logrus.Logger
}

func NewReviewService(
	apps pgrepo.ApplicationRepo,
	history pgrepo.ChatHistoryRepo,
	c cache.Cache,
	notifier notify.Notifier,
	cacheTTL time.Duration,
	log *logrus.Logger,
) ReviewService {
	return &reviewService{apps: apps, history: history, cache: c, notifier: notifier, cacheTTL: cacheTTL, log: log}
}

func (s *reviewService) List(ctx context.Context) ([]ApplicationSummary, error) {
	const op = "ReviewService.List"

	var cached []ApplicationSummary
	if hit, err := s.cache.GetJSON(ctx, applicationsCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := s.apps.ListNewestFirst(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	summaries := make([]ApplicationSummary, 0, len(rows))
	for _, app := range rows {
		summaries = append(summaries, ApplicationSummary{
			ID:            app.ID,
			SessionID:     app.SessionID,
			Name:          app.Name,
			IncomeClaimed: app.IncomeClaimed,
			LoanAmount:    app.LoanAmount,
			CreditScore:   app.CreditScore,
			FinalStatus:   app.FinalStatus,
			CreatedAt:     app.CreatedAt,
		})
	}

	if err := s.cache.SetJSON(ctx, applicationsCacheKey, summaries, s.cacheTTL); err != nil {
		s.log.WithError(err).Warn("failed to cache applications listing")
	}
	return summaries, nil
}

func (s *reviewService) Detail(ctx context.Context, applicationID string) (*ApplicationDetail, error) {
	const op = "ReviewService.Detail"

	if applicationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}
	app, err := s.apps.GetByID(ctx, applicationID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	msgs, err := s.history.ListBySession(ctx, app.SessionID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load chat history", err)
	}
	return &ApplicationDetail{Application: app, ChatHistory: msgs}, nil
}

func (s *reviewService) Approve(ctx context.Context, applicationID, managerEmail string) error {
	return s.decide(ctx, "ReviewService.Approve", applicationID, managerEmail, models.StatusApproved)
}

func (s *reviewService) Reject(ctx context.Context, applicationID, managerEmail string) error {
	return s.decide(ctx, "ReviewService.Reject", applicationID, managerEmail, models.StatusRejected)
}

// decide records the terminal status, drops the cached listing, and notifies
// the deciding manager. Notification failures are logged only.
func (s *reviewService) decide(ctx context.Context, op, applicationID, managerEmail, status string) error {
	if applicationID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "application_id is required", nil)
	}

	err := s.apps.UpdateByID(ctx, applicationID, map[string]any{
		"final_status": status,
		"updated_at":   time.Now().UTC(),
	})
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update status", err)
	}

	if err := s.cache.Del(ctx, applicationsCacheKey); err != nil {
		s.log.WithError(err).Warn("failed to invalidate applications cache")
	}

	body := fmt.Sprintf("Application %s has been marked %s.", applicationID, status)
	if managerEmail != "" {
		subject := fmt.Sprintf("Loan application %s", status)
		if err := s.notifier.SendEmail(ctx, managerEmail, subject, body); err != nil {
			s.log.WithError(err).WithField("application_id", applicationID).Warn("decision email failed")
		}
	}
	// empty number routes the publish to the ops topic
	if err := s.notifier.SendSMS(ctx, "", body); err != nil {
		s.log.WithError(err).WithField("application_id", applicationID).Warn("decision publish failed")
	}
	return nil
}
