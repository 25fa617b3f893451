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

func newQuotationTestService(db *gorm.DB) *QuotationService {
	invoiceRepo := repository.NewInvoiceRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	personRepo := repository.NewResponsiblePersonRepository(db)
	docNumbers := NewDocumentNumberService(invoiceRepo, quotationRepo, zap.NewNop())
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	return NewQuotationService(quotationRepo, personRepo, docNumbers, revalidator, zap.NewNop())
}

func TestQuotationCreateGeneratesNumber(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newQuotationTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	person := testutil.CreateTestPerson(t, db, "Pim", "P")

	created, err := svc.Create(ctx, &domain.CreateQuotationRequest{
		CustomerID:          customer.ID,
		ResponsiblePersonID: &person.ID,
		IssueDate:           "2025-08-17",
		ExpiryDate:          "2025-09-16",
		Items:               invoiceItems(),
		PriceTier:           domain.PriceTierWholesale,
	})
	require.NoError(t, err)
	assert.Equal(t, "No25001PW 17/08/2025", created.QuotationNumber)
	assert.Equal(t, domain.QuotationStatusDraft, created.Status)

	second, err := svc.Create(ctx, &domain.CreateQuotationRequest{
		CustomerID:          customer.ID,
		ResponsiblePersonID: &person.ID,
		IssueDate:           "2025-08-18",
		ExpiryDate:          "2025-09-17",
		Items:               invoiceItems(),
		PriceTier:           domain.PriceTierRetail,
	})
	require.NoError(t, err)
	assert.Equal(t, "No25002PR 18/08/2025", second.QuotationNumber)
}

func TestQuotationSequenceIndependentOfInvoices(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	quotations := newQuotationTestService(db)
	invoices := newInvoiceTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")

	_, err := invoices.Create(ctx, &domain.CreateInvoiceRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		DueDate:    "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)

	created, err := quotations.Create(ctx, &domain.CreateQuotationRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		ExpiryDate: "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)
	// the quotation series starts at 1 regardless of invoice activity
	assert.Equal(t, "No25001R 17/08/2025", created.QuotationNumber)
}

func TestConvertToInvoice(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newQuotationTestService(db)
	fixTime(t, time.Date(2025, 8, 20, 9, 30, 0, 0, time.UTC))

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	person := testutil.CreateTestPerson(t, db, "Pim", "P")

	quotation, err := svc.Create(ctx, &domain.CreateQuotationRequest{
		CustomerID:          customer.ID,
		ResponsiblePersonID: &person.ID,
		IssueDate:           "2025-08-17",
		ExpiryDate:          "2025-09-16",
		Items:               invoiceItems(),
		PriceTier:           domain.PriceTierWholesale,
	})
	require.NoError(t, err)

	result, err := svc.ConvertToInvoice(ctx, quotation.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	var invoice domain.Invoice
	require.NoError(t, db.First(&invoice, "id = ?", result.NewInvoiceID).Error)
	assert.Equal(t, "INV"+quotation.QuotationNumber, invoice.InvoiceNumber)
	assert.Equal(t, domain.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, customer.ID, invoice.CustomerID)
	assert.Equal(t, domain.PriceTierWholesale, invoice.PriceTier)

	issued := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	assert.True(t, invoice.IssueDate.Equal(issued), "issue date should be the conversion day")
	assert.True(t, invoice.DueDate.Equal(issued.AddDate(0, 0, 30)), "due date should be 30 days out")

	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Steel pipe", invoice.Items[0].Description)
}

func TestConvertToInvoiceTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newQuotationTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	quotation, err := svc.Create(ctx, &domain.CreateQuotationRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		ExpiryDate: "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)

	_, err = svc.ConvertToInvoice(ctx, quotation.ID)
	require.NoError(t, err)

	// the derived invoice number already exists
	_, err = svc.ConvertToInvoice(ctx, quotation.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestConvertToInvoiceUnknownQuotation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newQuotationTestService(db)

	_, err := svc.ConvertToInvoice(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuotationUpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newQuotationTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	quotation, err := svc.Create(ctx, &domain.CreateQuotationRequest{
		CustomerID: customer.ID,
		IssueDate:  "2025-08-17",
		ExpiryDate: "2025-09-16",
		Items:      invoiceItems(),
		PriceTier:  domain.PriceTierRetail,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusAccepted))
	require.NoError(t, svc.UpdateStatus(ctx, quotation.ID, domain.QuotationStatusAccepted))

	fetched, err := svc.GetByID(ctx, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotationStatusAccepted, fetched.Status)

	err = svc.UpdateStatus(ctx, quotation.ID, domain.QuotationStatus("Maybe"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
