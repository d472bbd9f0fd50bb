package postgres

import (
	"context"
	"errors"

	"github.com/loanpilot/backend/internal/models"
	"github.com/loanpilot/backend/internal/utils"
	"gorm.io/gorm"
)

type ManagerRepo interface {
	Create(ctx context.Context, m *models.Manager) error
	GetByEmail(ctx context.Context, email string) (*models.Manager, error)
}

type managerRepo struct {
	db *gorm.DB
}

func NewManagerRepo(db *gorm.DB) ManagerRepo {
	return &managerRepo{db: db}
}

func (r *managerRepo) Create(ctx context.Context, m *models.Manager) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *managerRepo) GetByEmail(ctx context.Context, email string) (*models.Manager, error) {
	var row models.Manager
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
