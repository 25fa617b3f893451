package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/mapper"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LeaveService struct {
	leaveRepo    *repository.LeaveRepository
	employeeRepo *repository.EmployeeRepository
	revalidator  *cache.Revalidator
	logger       *zap.Logger
}

func NewLeaveService(
	leaveRepo *repository.LeaveRepository,
	employeeRepo *repository.EmployeeRepository,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *LeaveService {
	return &LeaveService{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		revalidator:  revalidator,
		logger:       logger,
	}
}

// RecordLeave validates the request before any database work, then inserts
// the leave record and decrements the matching balance in one transaction.
func (s *LeaveService) RecordLeave(ctx context.Context, employeeID uuid.UUID, req *domain.RecordLeaveRequest) (*domain.LeaveRequestDTO, error) {
	if req.LeaveTypeID <= 0 {
		return nil, fmt.Errorf("%w: leave type id must be positive", ErrInvalidInput)
	}
	if req.DaysTaken <= 0 {
		return nil, fmt.Errorf("%w: days taken must be positive", ErrInvalidInput)
	}
	leaveDate, err := parseDate(req.LeaveDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	request := &domain.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		LeaveDate:   leaveDate,
		DaysTaken:   req.DaysTaken,
		Reason:      req.Reason,
	}

	if err := s.leaveRepo.RecordLeave(ctx, request); err != nil {
		switch {
		case errors.Is(err, repository.ErrLeaveBalanceNotFound):
			return nil, ErrLeaveBalanceNotFound
		case errors.Is(err, repository.ErrInsufficientLeaveBalance):
			return nil, ErrInsufficientLeaveBalance
		}
		return nil, fmt.Errorf("failed to record leave: %w", err)
	}

	s.logger.Info("leave recorded",
		zap.String("employee_id", employeeID.String()),
		zap.Int("leave_type_id", req.LeaveTypeID),
		zap.Float64("days_taken", req.DaysTaken))
	s.revalidator.EntityChanged(ctx, cache.EntityEmployee, nil)

	dto := mapper.ToLeaveRequestDTO(request)
	return &dto, nil
}

// ListBalances returns an employee's balances for the given year, falling
// back to the current year when none is specified.
func (s *LeaveService) ListBalances(ctx context.Context, employeeID uuid.UUID, year int) ([]domain.LeaveBalanceDTO, error) {
	if year == 0 {
		year = timeNow().Year()
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	balances, err := s.leaveRepo.ListBalances(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	dtos := make([]domain.LeaveBalanceDTO, len(balances))
	for i := range balances {
		dtos[i] = mapper.ToLeaveBalanceDTO(&balances[i])
	}
	return dtos, nil
}

// ListRequests returns leave history, optionally scoped to one employee
func (s *LeaveService) ListRequests(ctx context.Context, employeeID *uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	page, pageSize = clampPage(page, pageSize)

	requests, total, err := s.leaveRepo.ListRequests(ctx, employeeID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	dtos := make([]domain.LeaveRequestDTO, len(requests))
	for i := range requests {
		dtos[i] = mapper.ToLeaveRequestDTO(&requests[i])
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *LeaveService) ListLeaveTypes(ctx context.Context) ([]domain.LeaveTypeDTO, error) {
	leaveTypes, err := s.leaveRepo.ListLeaveTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	dtos := make([]domain.LeaveTypeDTO, len(leaveTypes))
	for i := range leaveTypes {
		dtos[i] = mapper.ToLeaveTypeDTO(&leaveTypes[i])
	}
	return dtos, nil
}
