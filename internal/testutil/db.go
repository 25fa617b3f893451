// Package testutil provides the in-memory database used by repository and
// service tests.
package testutil

import (
	"testing"

	"github.com/pwsupply/erp-api/internal/database"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database, migrates the full schema
// and seeds the rows the application expects to exist (leave types and the
// settings singleton). Each call returns an isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// the retry loop around document numbers matches on
		// gorm.ErrDuplicatedKey, same as the postgres setup
		TranslateError: true,
	})
	require.NoError(t, err)

	// every connection to :memory: is a separate database, so keep one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	seedDefaults(t, db)
	return db
}

func seedDefaults(t *testing.T, db *gorm.DB) {
	t.Helper()

	leaveTypes := []domain.LeaveType{
		{ID: 1, Name: "Annual Leave", DefaultDays: 6},
		{ID: 2, Name: "Sick Leave", DefaultDays: 30},
		{ID: 3, Name: "Personal Leave", DefaultDays: 3},
	}
	require.NoError(t, db.Create(&leaveTypes).Error)

	settings := domain.Settings{
		ID:          domain.SettingsRowID,
		CompanyName: "Test Company",
	}
	require.NoError(t, db.Create(&settings).Error)
}

// CreateTestCustomer inserts a customer with the given name
func CreateTestCustomer(t *testing.T, db *gorm.DB, name string) *domain.Customer {
	t.Helper()

	customer := &domain.Customer{Name: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

// CreateTestProduct inserts a product with zero stock
func CreateTestProduct(t *testing.T, db *gorm.DB, name string) *domain.Product {
	t.Helper()

	product := &domain.Product{Name: name, Price: 100}
	require.NoError(t, db.Create(product).Error)
	return product
}

// CreateTestWarehouse inserts a warehouse with the given name
func CreateTestWarehouse(t *testing.T, db *gorm.DB, name string) *domain.Warehouse {
	t.Helper()

	warehouse := &domain.Warehouse{Name: name}
	require.NoError(t, db.Create(warehouse).Error)
	return warehouse
}

// CreateTestPerson inserts a responsible person with the given initial
func CreateTestPerson(t *testing.T, db *gorm.DB, name, initial string) *domain.ResponsiblePerson {
	t.Helper()

	person := &domain.ResponsiblePerson{Name: name, Initial: initial}
	require.NoError(t, db.Create(person).Error)
	return person
}
