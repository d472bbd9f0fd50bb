package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/loanpilot/backend/internal/auth"
	"github.com/loanpilot/backend/internal/models"
	pgrepo "github.com/loanpilot/backend/internal/repositories/postgres"
	"github.com/loanpilot/backend/internal/utils"
)

type LoginResult struct {
	Token string
	Name  string
	Email string
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	EnsureDefaultManager(ctx context.Context, email, password, name string) error
}

type authService struct {
	managers pgrepo.ManagerRepo
	issuer   *auth.TokenIssuer
}

func NewAuthService(managers pgrepo.ManagerRepo, issuer *auth.TokenIssuer) AuthService {
	return &authService{managers: managers, issuer: issuer}
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	const op = "AuthService.Login"

	if email == "" || password == "" {
		return LoginResult{}, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	mgr, err := s.managers.GetByEmail(ctx, email)
	if errors.Is(err, utils.ErrNotFound) {
		return LoginResult{}, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}
	if err != nil {
		return LoginResult{}, utils.E(utils.CodeInternal, op, "failed to load manager", err)
	}

	if err := utils.CheckPassword(mgr.PasswordHash, password); err != nil {
		return LoginResult{}, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}

	token, err := s.issuer.Issue(mgr.ID, mgr.Email, mgr.Name)
	if err != nil {
		return LoginResult{}, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}

	return LoginResult{Token: token, Name: mgr.Name, Email: mgr.Email}, nil
}

// EnsureDefaultManager seeds the bootstrap manager account on startup if it
// does not exist yet.
func (s *authService) EnsureDefaultManager(ctx context.Context, email, password, name string) error {
	const op = "AuthService.EnsureDefaultManager"

	_, err := s.managers.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to check manager", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	err = s.managers.Create(ctx, &models.Manager{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to create manager", err)
	}
	return nil
}
