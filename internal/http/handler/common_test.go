package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/i18n"
	"github.com/pwsupply/erp-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceErrorResponse(t *testing.T, locale string, err error) (int, domain.APIError) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	if locale != "" {
		req = req.WithContext(i18n.WithLocale(req.Context(), locale))
	}
	rec := httptest.NewRecorder()
	respondServiceError(rec, req, err)

	var body domain.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: service.ErrNotFound, status: http.StatusNotFound},
		{name: "conflict", err: service.ErrConflict, status: http.StatusConflict},
		{name: "bad credentials", err: service.ErrInvalidCredentials, status: http.StatusUnauthorized},
		{name: "insufficient stock", err: service.ErrInsufficientStock, status: http.StatusBadRequest},
		{name: "legacy disabled", err: service.ErrLegacyDisabled, status: http.StatusServiceUnavailable},
		{name: "number exhausted", err: service.ErrNumberExhausted, status: http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := serviceErrorResponse(t, "", tc.err)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestRespondServiceErrorUsesRequestLocale(t *testing.T) {
	status, body := serviceErrorResponse(t, "th", service.ErrInsufficientStock)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "สินค้าในคลังไม่เพียงพอ", body.Detail)

	_, english := serviceErrorResponse(t, "en", service.ErrInsufficientStock)
	assert.Equal(t, "Insufficient stock for this operation", english.Detail)
}

func TestRespondServiceErrorHidesInternals(t *testing.T) {
	status, body := serviceErrorResponse(t, "en", errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred", body.Detail)
	assert.NotContains(t, body.Detail, "pq:")
}
