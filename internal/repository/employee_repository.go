package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// CreateWithBalances inserts the employee and initializes the given year's
// leave balances from the leave-type defaults, all in one transaction.
func (r *EmployeeRepository) CreateWithBalances(ctx context.Context, employee *domain.Employee, year int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(employee).Error; err != nil {
			return err
		}

		var leaveTypes []domain.LeaveType
		if err := tx.Find(&leaveTypes).Error; err != nil {
			return fmt.Errorf("failed to load leave types: %w", err)
		}

		for _, lt := range leaveTypes {
			balance := domain.LeaveBalance{
				EmployeeID:    employee.ID,
				LeaveTypeID:   lt.ID,
				Year:          year,
				RemainingDays: lt.DefaultDays,
			}
			if err := tx.Create(&balance).Error; err != nil {
				return fmt.Errorf("failed to initialize leave balance: %w", err)
			}
		}
		return nil
	})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Employee{}, "id = ?", id).Error
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&employees).Error
	return employees, err
}
