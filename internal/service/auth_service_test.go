package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/auth"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/service"
	"github.com/pwsupply/erp-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthTestService(t *testing.T, db *gorm.DB) (*service.AuthService, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", "erp-api", time.Hour)
	return service.NewAuthService(repository.NewUserRepository(db), issuer, zap.NewNop()), issuer
}

func createTestUser(t *testing.T, db *gorm.DB, email, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Test User",
		IsActive:     active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc, issuer := newAuthTestService(t, db)

	user := createTestUser(t, db, "pim@example.com", "correct-horse", true)

	resp, err := svc.Login(ctx, &domain.LoginRequest{
		Email:    "pim@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	userCtx, err := issuer.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userCtx.UserID)

	// a successful login stamps last_login_at
	var fetched domain.User
	require.NoError(t, db.First(&fetched, "id = ?", user.ID).Error)
	assert.NotNil(t, fetched.LastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc, _ := newAuthTestService(t, db)

	createTestUser(t, db, "pim@example.com", "correct-horse", true)
	createTestUser(t, db, "gone@example.com", "whatever", false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "pim@example.com", password: "battery-staple"},
		{name: "unknown email", email: "nobody@example.com", password: "correct-horse"},
		{name: "deactivated account", email: "gone@example.com", password: "whatever"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &domain.LoginRequest{Email: tc.email, Password: tc.password})
			// all failures look the same to the caller
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		})
	}
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc, _ := newAuthTestService(t, db)

	user := createTestUser(t, db, "pim@example.com", "correct-horse", true)

	dto, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "pim@example.com", dto.Email)

	_, err = svc.Me(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
