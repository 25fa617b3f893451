package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// CreateWithOpeningStock creates the product and, when a warehouse is given
// and the opening quantity is positive, records the opening stock in that
// warehouse together with a receive movement. One transaction.
func (r *ProductRepository) CreateWithOpeningStock(ctx context.Context, product *domain.Product, warehouseID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		if warehouseID == nil || product.StockQuantity <= 0 {
			return nil
		}
		inv := domain.ProductInventory{
			ProductID:   product.ID,
			WarehouseID: *warehouseID,
			Quantity:    product.StockQuantity,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		movement := domain.StockMovement{
			ProductID:      product.ID,
			WarehouseID:    *warehouseID,
			Type:           domain.MovementTypeReceive,
			QuantityChange: product.StockQuantity,
			Notes:          "Opening stock",
		}
		return tx.Create(&movement).Error
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

func (r *ProductRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.Product, int64, error) {
	var products []domain.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Product{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("name ASC").Find(&products).Error

	return products, total, err
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error
	return int(count), err
}

// ListLowStock returns products at or under their low-stock threshold
func (r *ProductRepository) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("low_stock_threshold > 0 AND stock_quantity <= low_stock_threshold").
		Order("stock_quantity ASC").
		Find(&products).Error
	return products, err
}
