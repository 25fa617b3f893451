package repository

import "errors"

// Errors surfaced by transactional repository operations. Services map
// these onto their own sentinel errors at the boundary.
var (
	ErrInsufficientStock        = errors.New("insufficient stock in warehouse")
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")
	ErrLeaveBalanceNotFound     = errors.New("no leave balance for employee, type and year")
)
