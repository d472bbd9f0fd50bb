package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/loanpilot/backend/internal/dialogue"
	"github.com/loanpilot/backend/internal/models"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/utils"
)

// ReplySessionNotFound is a conversational reply, not an HTTP error: the chat
// client renders it like any other assistant turn.
const ReplySessionNotFound = "Session not found. Please start a new session."

type ChatTurn struct {
	Response string
	NextStep string
}

type ChatService interface {
	ProcessMessage(ctx context.Context, sessionID, message string) (ChatTurn, error)
}

type chatService struct {
	apps    pgrepo.ApplicationRepo
	history pgrepo.ChatHistoryRepo
	locks   sessionLocks
}

func NewChatService(apps pgrepo.ApplicationRepo, history pgrepo.ChatHistoryRepo) ChatService {
	return &chatService{apps: apps, history: history}
}

// ProcessMessage runs one conversation turn. Turns for the same session are
// serialized so two concurrent inputs cannot both fill the same slot.
func (s *chatService) ProcessMessage(ctx context.Context, sessionID, message string) (ChatTurn, error) {
	const op = "ChatService.ProcessMessage"

	if sessionID == "" {
		return ChatTurn{}, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}

	unlock := s.locks.acquire(sessionID)
	defer unlock()

	app, err := s.apps.GetBySessionID(ctx, sessionID)
	if errors.Is(err, utils.ErrNotFound) {
		// no history is recorded for unknown sessions
		return ChatTurn{Response: ReplySessionNotFound}, nil
	}
	if err != nil {
		return ChatTurn{}, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}

	if err := s.appendHistory(ctx, sessionID, "user", message); err != nil {
		return ChatTurn{}, utils.E(utils.CodeInternal, op, "failed to record user message", err)
	}

	result := dialogue.Advance(app, message)

	if len(result.Updates) > 0 {
		result.Updates["updated_at"] = time.Now().UTC()
		if err := s.apps.UpdateBySessionID(ctx, sessionID, result.Updates); err != nil {
			return ChatTurn{}, utils.E(utils.CodeInternal, op, "failed to persist slot", err)
		}
	}

	if err := s.appendHistory(ctx, sessionID, "assistant", result.Reply); err != nil {
		return ChatTurn{}, utils.E(utils.CodeInternal, op, "failed to record reply", err)
	}

	return ChatTurn{Response: result.Reply, NextStep: result.NextStep}, nil
}

func (s *chatService) appendHistory(ctx context.Context, sessionID, role, message string) error {
	return s.history.Insert(ctx, &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// sessionLocks hands out one mutex per live session id.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) acquire(sessionID string) (release func()) {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*lockEntry)
	}
	e, ok := l.entries[sessionID]
	if !ok {
		e = &lockEntry{}
		l.entries[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, sessionID)
		}
		l.mu.Unlock()
	}
}
