package service

import (
	"context"
	"testing"
	"time"

	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixTime pins the service clock for the duration of the test
func fixTime(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func newInvoiceTestService(db *gorm.DB) *InvoiceService {
	invoiceRepo := repository.NewInvoiceRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	personRepo := repository.NewResponsiblePersonRepository(db)
	docNumbers := NewDocumentNumberService(invoiceRepo, quotationRepo, zap.NewNop())
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	return NewInvoiceService(invoiceRepo, personRepo, docNumbers, revalidator, zap.NewNop())
}

func invoiceItems() []domain.DocumentItem {
	return []domain.DocumentItem{
		{Description: "Steel pipe", Quantity: 2, UnitPrice: 50},
	}
}

func TestInvoiceCreateGeneratesNumber(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	person := testutil.CreateTestPerson(t, db, "Pim", "P")

	first, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID:          customer.ID,
		ResponsiblePersonID: &person.ID,
		IssueDate:           "2025-08-17",
		DueDate:             "2025-09-16",
		Items:               invoiceItems(),
		PriceTier:           domain.PriceTierWholesale,
	})
	require.NoError(t, err)
	assert.Equal(t, "INVNo25001PW 17/08/2025", first.InvoiceNumber)
	assert.Equal(t, domain.InvoiceStatusDraft, first.Status)

	// the next invoice in the same year continues the sequence
	second, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID:          customer.ID,
		ResponsiblePersonID: &person.ID,
		IssueDate:           "2025-08-18",
		DueDate:             "2025-09-17",
		Items:               invoiceItems(),
		PriceTier:           domain.PriceTierRetail,
	})
	require.NoError(t, err)
	assert.Equal(t, "INVNo25002PR 18/08/2025", second.InvoiceNumber)
}

func TestInvoiceCreateWithoutResponsiblePerson(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")

	created, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		DueDate:    "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)
	assert.Equal(t, "INVNo25001R 17/08/2025", created.InvoiceNumber)
}

func TestInvoiceCreateKeepsExplicitNumber(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")

	created, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID:    customer.ID,
		InvoiceNumber: "INVNo25777XW 17/08/2025",
		IssueDate:     "2025-08-17",
		DueDate:       "2025-09-16",
		Items:         invoiceItems(),
		PriceTier:     domain.PriceTierWholesale,
	})
	require.NoError(t, err)
	assert.Equal(t, "INVNo25777XW 17/08/2025", created.InvoiceNumber)

	// reusing the number collides with the unique index
	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID:    customer.ID,
		InvoiceNumber: "INVNo25777XW 17/08/2025",
		IssueDate:     "2025-08-17",
		DueDate:       "2025-09-16",
		Items:         invoiceItems(),
		PriceTier:     domain.PriceTierWholesale,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestInvoiceCreateRejectsBadDates(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")

	_, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "17/08/2025",
		DueDate:    "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInvoiceUpdateStatusIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	created, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		DueDate:    "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, created.ID, domain.InvoiceStatusSent))
	// repeating the transition changes nothing and does not fail
	require.NoError(t, svc.UpdateStatus(ctx, created.ID, domain.InvoiceStatusSent))

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, fetched.Status)

	err = svc.UpdateStatus(ctx, created.ID, domain.InvoiceStatus("Paid-ish"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestInvoiceNextNumberPreview(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)
	fixTime(t, time.Date(2025, 8, 17, 12, 0, 0, 0, time.UTC))

	preview, err := svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, preview.Sequence)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	_, err = svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		DueDate:    "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)

	preview, err = svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, preview.Sequence)
}

func TestMarkOverdue(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInvoiceTestService(db)
	fixTime(t, time.Date(2025, 8, 17, 3, 0, 0, 0, time.UTC))

	customer := testutil.CreateTestCustomer(t, db, "Acme")

	pastDue, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-07-01",
		DueDate:    "2025-07-31",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, pastDue.ID, domain.InvoiceStatusSent))

	// drafts are never flipped, whatever their due date
	stillDraft, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-07-01",
		DueDate:    "2025-07-15",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)

	notDue, err := svc.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-10",
		DueDate:    "2025-09-10",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, notDue.ID, domain.InvoiceStatusSent))

	marked, err := svc.MarkOverdue(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)

	fetched, err := svc.GetByID(ctx, pastDue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusOverdue, fetched.Status)

	fetched, err = svc.GetByID(ctx, stillDraft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, fetched.Status)

	fetched, err = svc.GetByID(ctx, notDue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusSent, fetched.Status)

	// a second run finds nothing left to mark
	marked, err = svc.MarkOverdue(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, marked)
}
