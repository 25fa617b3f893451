package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLeaveTestServices(db *gorm.DB) (*EmployeeService, *LeaveService) {
	employeeRepo := repository.NewEmployeeRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	employees := NewEmployeeService(employeeRepo, revalidator, zap.NewNop())
	leave := NewLeaveService(leaveRepo, employeeRepo, revalidator, zap.NewNop())
	return employees, leave
}

func createTestEmployee(t *testing.T, ctx context.Context, employees *EmployeeService) *domain.EmployeeDTO {
	t.Helper()
	employee, err := employees.Create(ctx, &domain.CreateEmployeeRequest{
		FullName:  "Somchai J.",
		Position:  "Sales",
		StartDate: "2025-01-15",
	})
	require.NoError(t, err)
	return employee
}

func TestEmployeeCreateSeedsBalances(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	employees, leave := newLeaveTestServices(db)
	fixTime(t, time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC))

	employee := createTestEmployee(t, ctx, employees)

	balances, err := leave.ListBalances(ctx, employee.ID, 2025)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	// seeded from the leave-type defaults
	byType := make(map[int]float64, len(balances))
	for _, b := range balances {
		byType[b.LeaveTypeID] = b.RemainingDays
	}
	assert.Equal(t, 6.0, byType[1])
	assert.Equal(t, 30.0, byType[2])
	assert.Equal(t, 3.0, byType[3])
}

func TestRecordLeaveDecrementsBalance(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	employees, leave := newLeaveTestServices(db)
	fixTime(t, time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC))

	employee := createTestEmployee(t, ctx, employees)

	recorded, err := leave.RecordLeave(ctx, employee.ID, &domain.RecordLeaveRequest{
		LeaveTypeID: 1,
		LeaveDate:   "2025-03-10",
		DaysTaken:   1.5,
		Reason:      "family visit",
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, recorded.DaysTaken)

	balances, err := leave.ListBalances(ctx, employee.ID, 2025)
	require.NoError(t, err)
	for _, b := range balances {
		if b.LeaveTypeID == 1 {
			assert.Equal(t, 4.5, b.RemainingDays)
		}
	}

	history, err := leave.ListRequests(ctx, &employee.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, history.Total)
}

func TestRecordLeaveInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	employees, leave := newLeaveTestServices(db)
	fixTime(t, time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC))

	employee := createTestEmployee(t, ctx, employees)

	// personal leave defaults to 3 days
	_, err := leave.RecordLeave(ctx, employee.ID, &domain.RecordLeaveRequest{
		LeaveTypeID: 3,
		LeaveDate:   "2025-03-10",
		DaysTaken:   5,
	})
	assert.ErrorIs(t, err, ErrInsufficientLeaveBalance)

	// the rejected request leaves balance and history untouched
	balances, err := leave.ListBalances(ctx, employee.ID, 2025)
	require.NoError(t, err)
	for _, b := range balances {
		if b.LeaveTypeID == 3 {
			assert.Equal(t, 3.0, b.RemainingDays)
		}
	}

	history, err := leave.ListRequests(ctx, &employee.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, history.Total)
}

func TestRecordLeaveYearComesFromLeaveDate(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	employees, leave := newLeaveTestServices(db)
	fixTime(t, time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC))

	employee := createTestEmployee(t, ctx, employees)

	// balances exist for 2025 only, so a 2024 date has nothing to draw from
	_, err := leave.RecordLeave(ctx, employee.ID, &domain.RecordLeaveRequest{
		LeaveTypeID: 1,
		LeaveDate:   "2024-06-01",
		DaysTaken:   1,
	})
	assert.ErrorIs(t, err, ErrLeaveBalanceNotFound)
}

func TestRecordLeaveValidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	employees, leave := newLeaveTestServices(db)
	fixTime(t, time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC))

	employee := createTestEmployee(t, ctx, employees)

	tests := []struct {
		name     string
		req      *domain.RecordLeaveRequest
		expected error
	}{
		{
			name:     "zero days",
			req:      &domain.RecordLeaveRequest{LeaveTypeID: 1, LeaveDate: "2025-03-10", DaysTaken: 0},
			expected: ErrInvalidInput,
		},
		{
			name:     "missing leave type",
			req:      &domain.RecordLeaveRequest{LeaveTypeID: 0, LeaveDate: "2025-03-10", DaysTaken: 1},
			expected: ErrInvalidInput,
		},
		{
			name:     "unparseable date",
			req:      &domain.RecordLeaveRequest{LeaveTypeID: 1, LeaveDate: "10/03/2025", DaysTaken: 1},
			expected: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := leave.RecordLeave(ctx, employee.ID, tc.req)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("unknown employee", func(t *testing.T) {
		_, err := leave.RecordLeave(ctx, uuid.New(), &domain.RecordLeaveRequest{
			LeaveTypeID: 1,
			LeaveDate:   "2025-03-10",
			DaysTaken:   1,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListLeaveTypes(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	_, leave := newLeaveTestServices(db)

	leaveTypes, err := leave.ListLeaveTypes(ctx)
	require.NoError(t, err)
	require.Len(t, leaveTypes, 3)
	assert.Equal(t, "Annual Leave", leaveTypes[0].Name)
}
