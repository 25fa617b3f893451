package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// RecordLeave inserts the leave request and decrements the matching balance
// for the leave date's year in one transaction. A missing balance row or a
// balance that would go negative rolls the whole thing back.
func (r *LeaveRepository) RecordLeave(ctx context.Context, request *domain.LeaveRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := request.LeaveDate.Year()

		var balance domain.LeaveBalance
		result := lockForUpdate(tx).
			Where("employee_id = ? AND leave_type_id = ? AND year = ?",
				request.EmployeeID, request.LeaveTypeID, year).
			First(&balance)

		if result.Error == gorm.ErrRecordNotFound {
			return ErrLeaveBalanceNotFound
		}
		if result.Error != nil {
			return fmt.Errorf("failed to read leave balance: %w", result.Error)
		}

		remaining := balance.RemainingDays - request.DaysTaken
		if remaining < 0 {
			return ErrInsufficientLeaveBalance
		}

		if err := tx.Create(request).Error; err != nil {
			return fmt.Errorf("failed to record leave request: %w", err)
		}

		return tx.Model(&domain.LeaveBalance{}).
			Where("id = ?", balance.ID).
			Updates(map[string]interface{}{
				"remaining_days": remaining,
				"updated_at":     time.Now(),
			}).Error
	})
}

// ListBalances returns an employee's balances for a year, leave type preloaded
func (r *LeaveRepository) ListBalances(ctx context.Context, employeeID uuid.UUID, year int) ([]domain.LeaveBalance, error) {
	var balances []domain.LeaveBalance
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("leave_type_id ASC").
		Find(&balances).Error
	return balances, err
}

// ListRequests returns leave history, newest first. A nil employee id
// returns everyone's history.
func (r *LeaveRepository) ListRequests(ctx context.Context, employeeID *uuid.UUID, page, pageSize int) ([]domain.LeaveRequest, int64, error) {
	var requests []domain.LeaveRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.LeaveRequest{})
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Employee").Preload("LeaveType").
		Offset(offset).Limit(pageSize).
		Order("leave_date DESC, created_at DESC").
		Find(&requests).Error

	return requests, total, err
}

func (r *LeaveRepository) ListLeaveTypes(ctx context.Context) ([]domain.LeaveType, error) {
	var leaveTypes []domain.LeaveType
	err := r.db.WithContext(ctx).Order("id ASC").Find(&leaveTypes).Error
	return leaveTypes, err
}
