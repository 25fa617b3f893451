package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "pim@example.com", "Pim")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userCtx, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
	assert.Equal(t, "pim@example.com", userCtx.Email)
	assert.Equal(t, "Pim", userCtx.DisplayName)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)
	other := NewTokenIssuer("other-secret", "erp-api", time.Hour)

	token, err := issuer.Issue(uuid.New(), "pim@example.com", "Pim")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)
	other := NewTokenIssuer("test-secret", "someone-else", time.Hour)

	token, err := other.Issue(uuid.New(), "pim@example.com", "Pim")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", -time.Minute)

	token, err := issuer.Issue(uuid.New(), "pim@example.com", "Pim")
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)

	_, err := issuer.Validate("not-a-token")
	assert.Error(t, err)
}
