package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanpilot/backend/internal/auth"
	"github.com/loanpilot/backend/internal/utils"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeManagerRepo, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", "loanpilot", time.Hour)
	managers := newFakeManagerRepo()
	return NewAuthService(managers, issuer), managers, issuer
}

func TestLogin_Success(t *testing.T) {
	svc, _, issuer := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultManager(ctx, "manager@bank.com", "s3cret", "Default Manager"))

	result, err := svc.Login(ctx, "manager@bank.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "manager@bank.com", result.Email)
	assert.Equal(t, "Default Manager", result.Name)

	claims, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "manager@bank.com", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultManager(ctx, "manager@bank.com", "s3cret", "Default Manager"))

	_, err := svc.Login(ctx, "manager@bank.com", "wrong")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nobody@bank.com", "s3cret")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestEnsureDefaultManager_Idempotent(t *testing.T) {
	svc, managers, _ := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultManager(ctx, "manager@bank.com", "s3cret", "Default Manager"))
	first, err := managers.GetByEmail(ctx, "manager@bank.com")
	require.NoError(t, err)

	require.NoError(t, svc.EnsureDefaultManager(ctx, "manager@bank.com", "different", "Default Manager"))
	second, err := managers.GetByEmail(ctx, "manager@bank.com")
	require.NoError(t, err)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
}
