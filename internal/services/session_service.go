package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/loanpilot/backend/internal/dialogue"
	"github.com/loanpilot/backend/internal/models"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/utils"
)

type SessionService interface {
	Start(ctx context.Context, channel string) (*models.Application, string, error)
	SaveReport(ctx context.Context, sessionID string) error
}

type sessionService struct {
	apps    pgrepo.ApplicationRepo
	history pgrepo.ChatHistoryRepo
}

func NewSessionService(apps pgrepo.ApplicationRepo, history pgrepo.ChatHistoryRepo) SessionService {
	return &sessionService{apps: apps, history: history}
}

// Start creates the application row and seeds the greeting into chat history.
func (s *sessionService) Start(ctx context.Context, channel string) (*models.Application, string, error) {
	const op = "SessionService.Start"

	if channel == "" {
		return nil, "", utils.E(utils.CodeInvalidArgument, op, "channel is required", nil)
	}

	now := time.Now().UTC()
	app := &models.Application{
		ID:          uuid.NewString(),
		SessionID:   uuid.NewString(),
		Channel:     channel,
		FinalStatus: models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to create application", err)
	}

	greeting := dialogue.GreetingVoice
	if channel == "chat" {
		greeting = dialogue.GreetingChat
	}

	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: app.SessionID,
		Role:      "assistant",
		Message:   greeting,
		Timestamp: now,
	}
	if err := s.history.Insert(ctx, msg); err != nil {
		return nil, "", utils.E(utils.CodeInternal, op, "failed to seed greeting", err)
	}

	return app, greeting, nil
}

// SaveReport touches updated_at once processing is complete.
func (s *sessionService) SaveReport(ctx context.Context, sessionID string) error {
	const op = "SessionService.SaveReport"

	if sessionID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	err := s.apps.UpdateBySessionID(ctx, sessionID, map[string]any{
		"updated_at": time.Now().UTC(),
	})
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "application not found", err)
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save report", err)
	}
	return nil
}
