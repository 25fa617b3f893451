package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is returned when login fails
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInsufficientStock is returned when a stock change would drive a
	// warehouse quantity below zero
	ErrInsufficientStock = errors.New("insufficient stock in warehouse")

	// ErrSameWarehouse is returned when a transfer names the same source and destination
	ErrSameWarehouse = errors.New("source and destination warehouse must differ")

	// ErrInvalidMovementType is returned for an unknown stock movement type
	ErrInvalidMovementType = errors.New("invalid stock movement type")

	// ErrZeroQuantity is returned when a stock adjustment has no effect
	ErrZeroQuantity = errors.New("quantity change must not be zero")

	// ErrInsufficientLeaveBalance is returned when recording leave would
	// drive the balance below zero
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")

	// ErrLeaveBalanceNotFound is returned when no balance row exists for
	// the employee, leave type and year
	ErrLeaveBalanceNotFound = errors.New("no leave balance for this leave type and year")

	// ErrInvalidStatus is returned for an unknown document status
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNumberExhausted is returned when a unique document number could
	// not be allocated within the retry budget
	ErrNumberExhausted = errors.New("could not allocate a unique document number")

	// ErrLegacyDisabled is returned when the legacy accounting integration
	// is not configured
	ErrLegacyDisabled = errors.New("legacy accounting integration is not enabled")
)
