package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) error {
	return r.db.WithContext(ctx).Create(quotation).Error
}

func (r *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("ResponsiblePerson").
		First(&quotation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

func (r *QuotationRepository) Update(ctx context.Context, quotation *domain.Quotation) error {
	return r.db.WithContext(ctx).Save(quotation).Error
}

func (r *QuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Quotation{}, "id = ?", id).Error
}

func (r *QuotationRepository) List(ctx context.Context, page, pageSize int, status domain.QuotationStatus, search string) ([]domain.Quotation, int64, error) {
	var quotations []domain.Quotation
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Quotation{})

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(quotation_number) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Customer").Preload("ResponsiblePerson").
		Offset(offset).Limit(pageSize).
		Order("issue_date DESC, created_at DESC").
		Find(&quotations).Error

	return quotations, total, err
}

// UpdateStatus sets the status by id unconditionally
func (r *QuotationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// LatestNumber returns the most recent quotation number starting with the
// given prefix (e.g. "No25"), or "" when none exists yet.
func (r *QuotationRepository) LatestNumber(ctx context.Context, prefix string) (string, error) {
	var quotation domain.Quotation
	err := r.db.WithContext(ctx).
		Select("quotation_number").
		Where("quotation_number LIKE ?", prefix+"%").
		Order("created_at DESC").
		First(&quotation).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return quotation.QuotationNumber, nil
}

// ConvertToInvoice reads the quotation and inserts the derived invoice in
// one transaction, returning the new invoice.
func (r *QuotationRepository) ConvertToInvoice(ctx context.Context, id uuid.UUID, build func(q *domain.Quotation) *domain.Invoice) (*domain.Invoice, error) {
	var invoice *domain.Invoice
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var quotation domain.Quotation
		if err := tx.First(&quotation, "id = ?", id).Error; err != nil {
			return err
		}
		invoice = build(&quotation)
		return tx.Create(invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (r *QuotationRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Quotation{}).Count(&count).Error
	return int(count), err
}
