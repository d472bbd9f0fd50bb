package postgres

import (
	"context"
	"errors"

	"github.com/loanpilot/backend/internal/models"
	"github.com/loanpilot/backend/internal/utils"
	"gorm.io/gorm"
)

type ApplicationRepo interface {
	Create(ctx context.Context, app *models.Application) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	UpdateBySessionID(ctx context.Context, sessionID string, fields map[string]any) error
	UpdateByID(ctx context.Context, id string, fields map[string]any) error
	ListNewestFirst(ctx context.Context) ([]models.Application, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepo {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Application, error) {
	var row models.Application
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var row models.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *applicationRepo) UpdateBySessionID(ctx context.Context, sessionID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("session_id = ?", sessionID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) UpdateByID(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) ListNewestFirst(ctx context.Context) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
