package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("ResponsiblePerson").
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Invoice{}, "id = ?", id).Error
}

func (r *InvoiceRepository) List(ctx context.Context, page, pageSize int, status domain.InvoiceStatus, search string) ([]domain.Invoice, int64, error) {
	var invoices []domain.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(invoice_number) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Customer").Preload("ResponsiblePerson").
		Offset(offset).Limit(pageSize).
		Order("issue_date DESC, created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

// UpdateStatus sets the status by id unconditionally, so re-applying a
// transition is a no-op rather than an error.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// LatestNumber returns the most recent invoice number starting with the
// given prefix (e.g. "INVNo25"), or "" when none exists yet.
func (r *InvoiceRepository) LatestNumber(ctx context.Context, prefix string) (string, error) {
	var invoice domain.Invoice
	err := r.db.WithContext(ctx).
		Select("invoice_number").
		Where("invoice_number LIKE ?", prefix+"%").
		Order("created_at DESC").
		First(&invoice).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return invoice.InvoiceNumber, nil
}

// MarkOverdue moves Sent invoices past their due date to Overdue and
// returns how many rows changed. Run by the nightly job.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("status = ? AND due_date < ?", domain.InvoiceStatusSent, today).
		Updates(map[string]interface{}{
			"status":     domain.InvoiceStatusOverdue,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *InvoiceRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).Count(&count).Error
	return int(count), err
}

// CountByStatus returns invoice counts grouped by status
func (r *InvoiceRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	type row struct {
		Status string
		Count  int
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

// ListByStatuses returns all invoices in the given statuses. Totals live in
// the jsonb item list, so revenue aggregation happens in the service.
func (r *InvoiceRepository) ListByStatuses(ctx context.Context, statuses ...domain.InvoiceStatus) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Find(&invoices).Error
	return invoices, err
}

// ListPaidByYear returns paid invoices issued in the given year, with
// customer preloaded for the top-customer report.
func (r *InvoiceRepository) ListPaidByYear(ctx context.Context, year int) ([]domain.Invoice, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("status = ? AND issue_date >= ? AND issue_date < ?", domain.InvoiceStatusPaid, start, end).
		Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) ListRecent(ctx context.Context, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&invoices).Error
	return invoices, err
}
