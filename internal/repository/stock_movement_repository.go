package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type StockMovementRepository struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

// ListByProduct returns the movement ledger for a product, newest first
func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page, pageSize int) ([]domain.StockMovement, int64, error) {
	var movements []domain.StockMovement
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.StockMovement{}).
		Where("product_id = ?", productID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Warehouse").
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&movements).Error

	return movements, total, err
}
