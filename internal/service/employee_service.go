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

type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	revalidator  *cache.Revalidator
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo *repository.EmployeeRepository,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		revalidator:  revalidator,
		logger:       logger,
	}
}

// Create inserts the employee and seeds the current year's leave balances
// from the leave-type defaults, all in one transaction.
func (s *EmployeeService) Create(ctx context.Context, req *domain.CreateEmployeeRequest) (*domain.EmployeeDTO, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	employee := &domain.Employee{
		FullName:  req.FullName,
		Position:  req.Position,
		StartDate: startDate,
	}

	if err := s.employeeRepo.CreateWithBalances(ctx, employee, timeNow().Year()); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.Info("employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("full_name", employee.FullName))
	s.revalidator.EntityChanged(ctx, cache.EntityEmployee, nil)

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateEmployeeRequest) (*domain.EmployeeDTO, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	employee.FullName = req.FullName
	employee.Position = req.Position
	employee.StartDate = startDate

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityEmployee, nil)

	dto := mapper.ToEmployeeDTO(employee)
	return &dto, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityEmployee, nil)
	return nil
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.EmployeeDTO, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	dtos := make([]domain.EmployeeDTO, len(employees))
	for i := range employees {
		dtos[i] = mapper.ToEmployeeDTO(&employees[i])
	}
	return dtos, nil
}
