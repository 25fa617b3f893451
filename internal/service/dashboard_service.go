package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/mapper"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
)

const (
	recentInvoicesLimit = 5
	topCustomersLimit   = 5
)

type DashboardService struct {
	customerRepo  *repository.CustomerRepository
	productRepo   *repository.ProductRepository
	invoiceRepo   *repository.InvoiceRepository
	quotationRepo *repository.QuotationRepository
	logger        *zap.Logger
}

func NewDashboardService(
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
	invoiceRepo *repository.InvoiceRepository,
	quotationRepo *repository.QuotationRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		logger:        logger,
	}
}

// Metrics assembles the dashboard in one pass. Document totals live inside
// the jsonb item lists, so revenue sums happen here rather than in SQL.
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetricsDTO, error) {
	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	invoiceCount, err := s.invoiceRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices: %w", err)
	}
	quotationCount, err := s.quotationRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotations: %w", err)
	}

	byStatus, err := s.invoiceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices by status: %w", err)
	}

	outstanding, err := s.invoiceRepo.ListByStatuses(ctx, domain.InvoiceStatusSent, domain.InvoiceStatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to list outstanding invoices: %w", err)
	}
	var outstandingRevenue float64
	for i := range outstanding {
		outstandingRevenue += outstanding[i].Items.Total()
	}

	paid, err := s.invoiceRepo.ListByStatuses(ctx, domain.InvoiceStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid invoices: %w", err)
	}
	var paidRevenue float64
	for i := range paid {
		paidRevenue += paid[i].Items.Total()
	}

	recent, err := s.invoiceRepo.ListRecent(ctx, recentInvoicesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent invoices: %w", err)
	}
	recentDTOs := make([]domain.InvoiceDTO, len(recent))
	for i := range recent {
		recentDTOs[i] = mapper.ToInvoiceDTO(&recent[i])
	}

	lowStock, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock products: %w", err)
	}
	lowStockDTOs := make([]domain.ProductDTO, len(lowStock))
	for i := range lowStock {
		lowStockDTOs[i] = mapper.ToProductDTO(&lowStock[i])
	}

	return &domain.DashboardMetricsDTO{
		CustomerCount:      customerCount,
		ProductCount:       productCount,
		InvoiceCount:       invoiceCount,
		QuotationCount:     quotationCount,
		OutstandingRevenue: outstandingRevenue,
		PaidRevenue:        paidRevenue,
		InvoicesByStatus:   byStatus,
		RecentInvoices:     recentDTOs,
		LowStockProducts:   lowStockDTOs,
	}, nil
}

// ReportSummary builds the yearly report: paid revenue per month, invoice
// status breakdown and the top customers by paid revenue.
func (s *DashboardService) ReportSummary(ctx context.Context, year int) (*domain.ReportSummaryDTO, error) {
	if year == 0 {
		year = timeNow().Year()
	}

	paid, err := s.invoiceRepo.ListPaidByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid invoices: %w", err)
	}

	monthly := make([]domain.MonthlyRevenueDTO, 12)
	for m := 0; m < 12; m++ {
		monthly[m].Month = time.Month(m + 1).String()
	}
	type customerTotal struct {
		id    uuid.UUID
		name  string
		total float64
	}
	customerTotals := make(map[uuid.UUID]*customerTotal)

	for i := range paid {
		inv := &paid[i]
		total := inv.Items.Total()
		monthly[inv.IssueDate.Month()-1].Revenue += total

		ct, ok := customerTotals[inv.CustomerID]
		if !ok {
			ct = &customerTotal{id: inv.CustomerID}
			if inv.Customer != nil {
				ct.name = inv.Customer.Name
			}
			customerTotals[inv.CustomerID] = ct
		}
		ct.total += total
	}

	byStatus, err := s.invoiceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count invoices by status: %w", err)
	}

	ranked := make([]*customerTotal, 0, len(customerTotals))
	for _, ct := range customerTotals {
		ranked = append(ranked, ct)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].total > ranked[j].total })
	if len(ranked) > topCustomersLimit {
		ranked = ranked[:topCustomersLimit]
	}

	top := make([]domain.TopCustomerDTO, len(ranked))
	for i, ct := range ranked {
		top[i] = domain.TopCustomerDTO{
			CustomerID:   ct.id,
			CustomerName: ct.name,
			PaidRevenue:  ct.total,
		}
	}

	return &domain.ReportSummaryDTO{
		Year:             year,
		MonthlyRevenue:   monthly,
		InvoicesByStatus: byStatus,
		TopCustomers:     top,
	}, nil
}
