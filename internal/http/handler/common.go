package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/i18n"
	"github.com/pwsupply/erp-api/internal/service"
	"go.uber.org/zap"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a standardized validation error response with specific field messages
func respondValidationError(w http.ResponseWriter, err error) {
	errs := make(map[string]string)
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			fieldName := toJSONFieldName(fe.Field())
			errs[fieldName] = formatValidationError(fe)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: "One or more fields failed validation",
		Errors: errs,
	})
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", toJSONFieldName(fe.Field()))
	case "email":
		return "Must be a valid email address"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("Must be less than %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "datetime":
		return "Must be a valid date in YYYY-MM-DD format"
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// toJSONFieldName converts a Go struct field name to its JSON equivalent (camelCase)
func toJSONFieldName(field string) string {
	if len(field) == 0 {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

// handleServiceError logs unexpected errors and writes the mapped response
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, message string, err error) {
	if !isClientError(err) {
		logger.Error(message, zap.Error(err))
	}
	respondServiceError(w, r, err)
}

func isClientError(err error) bool {
	for _, sentinel := range []error{
		service.ErrNotFound,
		service.ErrConflict,
		service.ErrInvalidCredentials,
		service.ErrUnauthorized,
		service.ErrInsufficientStock,
		service.ErrSameWarehouse,
		service.ErrInvalidMovementType,
		service.ErrZeroQuantity,
		service.ErrInsufficientLeaveBalance,
		service.ErrLeaveBalanceNotFound,
		service.ErrInvalidStatus,
		service.ErrInvalidInput,
		service.ErrLegacyDisabled,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// respondServiceError maps service sentinel errors to HTTP responses,
// with the detail message resolved from the i18n catalog for the request
// locale. Unrecognized errors become opaque 500s so internals never leak.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	key := "error.internal"

	switch {
	case errors.Is(err, service.ErrNotFound):
		status, key = http.StatusNotFound, "error.not_found"
	case errors.Is(err, service.ErrConflict):
		status, key = http.StatusConflict, "error.conflict"
	case errors.Is(err, service.ErrInvalidCredentials):
		status, key = http.StatusUnauthorized, "error.invalid_credentials"
	case errors.Is(err, service.ErrUnauthorized):
		status, key = http.StatusUnauthorized, "error.unauthorized"
	case errors.Is(err, service.ErrInsufficientStock):
		status, key = http.StatusBadRequest, "error.insufficient_stock"
	case errors.Is(err, service.ErrSameWarehouse):
		status, key = http.StatusBadRequest, "error.same_warehouse"
	case errors.Is(err, service.ErrInvalidMovementType):
		status, key = http.StatusBadRequest, "error.invalid_movement_type"
	case errors.Is(err, service.ErrZeroQuantity):
		status, key = http.StatusBadRequest, "error.zero_quantity"
	case errors.Is(err, service.ErrInsufficientLeaveBalance):
		status, key = http.StatusBadRequest, "error.insufficient_leave"
	case errors.Is(err, service.ErrLeaveBalanceNotFound):
		status, key = http.StatusBadRequest, "error.leave_balance_not_found"
	case errors.Is(err, service.ErrInvalidStatus):
		status, key = http.StatusBadRequest, "error.invalid_status"
	case errors.Is(err, service.ErrInvalidInput):
		status, key = http.StatusBadRequest, "error.invalid_input"
	case errors.Is(err, service.ErrLegacyDisabled):
		status, key = http.StatusServiceUnavailable, "error.legacy_disabled"
	case errors.Is(err, service.ErrNumberExhausted):
		status, key = http.StatusConflict, "error.number_exhausted"
	}

	respondWithError(w, status, i18n.Lookup(i18n.FromContext(r.Context()), key))
}

// getErrorType returns the appropriate error type for an HTTP status code
func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusUnauthorized:
		return domain.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return domain.ErrorTypeForbidden
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	default:
		return domain.ErrorTypeInternal
	}
}
