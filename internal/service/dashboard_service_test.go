package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/service"
	"github.com/pwsupply/erp-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newDashboardTestService(db *gorm.DB) *service.DashboardService {
	return service.NewDashboardService(
		repository.NewCustomerRepository(db),
		repository.NewProductRepository(db),
		repository.NewInvoiceRepository(db),
		repository.NewQuotationRepository(db),
		zap.NewNop(),
	)
}

func seedInvoice(t *testing.T, db *gorm.DB, customer *domain.Customer, number string, status domain.InvoiceStatus, issue time.Time, total float64) *domain.Invoice {
	t.Helper()
	invoice := &domain.Invoice{
		CustomerID:    customer.ID,
		InvoiceNumber: number,
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 1, 0),
		Items:         domain.DocumentItems{{Description: "Line", Quantity: 1, UnitPrice: total}},
		Status:        status,
	}
	require.NoError(t, db.Create(invoice).Error)
	return invoice
}

func TestDashboardMetrics(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newDashboardTestService(db)

	customer := testutil.CreateTestCustomer(t, db, "Acme")
	testutil.CreateTestProduct(t, db, "Steel pipe")

	issue := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedInvoice(t, db, customer, "INVNo25001R 01/03/2025", domain.InvoiceStatusSent, issue, 500)
	seedInvoice(t, db, customer, "INVNo25002R 01/03/2025", domain.InvoiceStatusOverdue, issue, 250)
	seedInvoice(t, db, customer, "INVNo25003R 01/03/2025", domain.InvoiceStatusPaid, issue, 1000)
	seedInvoice(t, db, customer, "INVNo25004R 01/03/2025", domain.InvoiceStatusDraft, issue, 9999)

	metrics, err := svc.Metrics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.CustomerCount)
	assert.Equal(t, 1, metrics.ProductCount)
	assert.Equal(t, 4, metrics.InvoiceCount)
	// sent and overdue count as outstanding, drafts count for nothing
	assert.Equal(t, 750.0, metrics.OutstandingRevenue)
	assert.Equal(t, 1000.0, metrics.PaidRevenue)
	assert.Equal(t, 1, metrics.InvoicesByStatus["Paid"])
	assert.Len(t, metrics.RecentInvoices, 4)
}

func TestReportSummary(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newDashboardTestService(db)

	acme := testutil.CreateTestCustomer(t, db, "Acme")
	steel := testutil.CreateTestCustomer(t, db, "Bangkok Steel")

	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	lastYear := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	seedInvoice(t, db, acme, "INVNo25001R 10/03/2025", domain.InvoiceStatusPaid, march, 300)
	seedInvoice(t, db, acme, "INVNo25002R 20/06/2025", domain.InvoiceStatusPaid, june, 200)
	seedInvoice(t, db, steel, "INVNo25003R 20/06/2025", domain.InvoiceStatusPaid, june, 900)
	// outside the requested year
	seedInvoice(t, db, acme, "INVNo24001R 10/03/2024", domain.InvoiceStatusPaid, lastYear, 5000)
	// not paid, so not revenue
	seedInvoice(t, db, steel, "INVNo25004R 20/06/2025", domain.InvoiceStatusSent, june, 7777)

	summary, err := svc.ReportSummary(ctx, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, summary.Year)
	require.Len(t, summary.MonthlyRevenue, 12)
	assert.Equal(t, "March", summary.MonthlyRevenue[2].Month)
	assert.Equal(t, 300.0, summary.MonthlyRevenue[2].Revenue)
	assert.Equal(t, 1100.0, summary.MonthlyRevenue[5].Revenue)
	assert.Equal(t, 0.0, summary.MonthlyRevenue[0].Revenue)

	require.Len(t, summary.TopCustomers, 2)
	// ranked by paid revenue within the year
	assert.Equal(t, "Bangkok Steel", summary.TopCustomers[0].CustomerName)
	assert.Equal(t, 900.0, summary.TopCustomers[0].PaidRevenue)
	assert.Equal(t, "Acme", summary.TopCustomers[1].CustomerName)
	assert.Equal(t, 500.0, summary.TopCustomers[1].PaidRevenue)
}
