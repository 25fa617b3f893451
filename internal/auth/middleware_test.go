package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func protectedHandler(t *testing.T, captured **UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		require.True(t, ok, "handler should only run with a user context")
		*captured = userCtx
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateWithBearerToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)
	middleware := NewMiddleware(issuer, "", zap.NewNop())

	userID := uuid.New()
	token, err := issuer.Issue(userID, "pim@example.com", "Pim")
	require.NoError(t, err)

	var captured *UserContext
	handler := middleware.Authenticate(protectedHandler(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
}

func TestAuthenticateWithAPIKey(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)
	middleware := NewMiddleware(issuer, "service-key", zap.NewNop())

	var captured *UserContext
	handler := middleware.Authenticate(protectedHandler(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	req.Header.Set("x-api-key", "service-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "System", captured.DisplayName)
}

func TestAuthenticateRejections(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "erp-api", time.Hour)
	middleware := NewMiddleware(issuer, "service-key", zap.NewNop())

	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without credentials")
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{
			name:  "no credentials",
			setup: func(r *http.Request) {},
		},
		{
			name: "malformed authorization header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
			},
		},
		{
			name: "invalid token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-token")
			},
		},
		{
			name: "wrong api key",
			setup: func(r *http.Request) {
				r.Header.Set("x-api-key", "guessed-key")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
			tc.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
