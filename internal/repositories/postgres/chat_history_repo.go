package postgres

import (
	"context"

	"github.com/loanpilot/backend/internal/models"
	"gorm.io/gorm"
)

type ChatHistoryRepo interface {
	Insert(ctx context.Context, msg *models.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

type chatHistoryRepo struct {
	db *gorm.DB
}

func NewChatHistoryRepo(db *gorm.DB) ChatHistoryRepo {
	return &chatHistoryRepo{db: db}
}

func (r *chatHistoryRepo) Insert(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *chatHistoryRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
