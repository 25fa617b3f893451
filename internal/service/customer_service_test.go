package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/service"
	"github.com/pwsupply/erp-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCustomerTestService(db *gorm.DB) *service.CustomerService {
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	return service.NewCustomerService(repository.NewCustomerRepository(db), revalidator, zap.NewNop())
}

func TestCustomerCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newCustomerTestService(db)

	person := testutil.CreateTestPerson(t, db, "Pim", "P")

	created, err := svc.Create(ctx, &domain.CreateCustomerRequest{
		Name:                "Acme Construction",
		TaxID:               "0105551234567",
		Address:             "88 Sukhumvit Rd",
		Phone:               "02-123-4567",
		LineID:              "@acme",
		ResponsiblePersonID: &person.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Construction", created.Name)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateCustomerRequest{
		Name:  "Acme Construction Co.",
		TaxID: "0105551234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Construction Co.", updated.Name)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCustomerGetByIDIncludesDocuments(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newCustomerTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	invoice := &domain.Invoice{
		CustomerID:    customer.ID,
		InvoiceNumber: "INVNo25001R 17/08/2025",
		Status:        domain.InvoiceStatusDraft,
	}
	require.NoError(t, db.Create(invoice).Error)
	quotation := &domain.Quotation{
		CustomerID:      customer.ID,
		QuotationNumber: "No25001R 17/08/2025",
		Status:          domain.QuotationStatusDraft,
	}
	require.NoError(t, db.Create(quotation).Error)

	detail, err := svc.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, detail.Invoices, 1)
	require.Len(t, detail.Quotations, 1)
	assert.Equal(t, invoice.InvoiceNumber, detail.Invoices[0].InvoiceNumber)
	assert.Equal(t, quotation.QuotationNumber, detail.Quotations[0].QuotationNumber)
}

func TestCustomerListSearch(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newCustomerTestService(db)

	testutil.CreateTestCustomer(t, db, "Acme Construction")
	testutil.CreateTestCustomer(t, db, "Bangkok Steel")

	result, err := svc.List(ctx, 1, 20, "acme")
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Total)

	result, err = svc.List(ctx, 1, 20, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Total)
}

func TestCustomerUpdateUnknown(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newCustomerTestService(db)

	_, err := svc.Update(ctx, uuid.New(), &domain.UpdateCustomerRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
