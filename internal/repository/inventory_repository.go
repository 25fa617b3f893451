package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

// InventoryRepository owns the per-warehouse stock rows, the denormalized
// product total and the movement ledger. Every mutation here runs as one
// transaction so the three can never drift apart.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListByProduct returns the per-warehouse stock rows for a product
func (r *InventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.ProductInventory, error) {
	var rows []domain.ProductInventory
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Where("product_id = ?", productID).
		Find(&rows).Error
	return rows, err
}

// AdjustStock applies a signed quantity change to a product in a warehouse:
// locks or creates the inventory row, rejects a result below zero, bumps the
// denormalized product total and appends one ledger row.
func (r *InventoryRepository) AdjustStock(ctx context.Context, productID, warehouseID uuid.UUID, movementType domain.MovementType, delta int, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyDelta(tx, productID, warehouseID, delta); err != nil {
			return err
		}
		movement := domain.StockMovement{
			ProductID:      productID,
			WarehouseID:    warehouseID,
			Type:           movementType,
			QuantityChange: delta,
			Notes:          notes,
		}
		return tx.Create(&movement).Error
	})
}

// TransferStock moves quantity from one warehouse to another. The debit and
// credit plus their two ledger rows commit or roll back together.
func (r *InventoryRepository) TransferStock(ctx context.Context, productID, fromID, toID uuid.UUID, quantity int, notes string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := applyDelta(tx, productID, fromID, -quantity); err != nil {
			return err
		}
		if err := applyDelta(tx, productID, toID, quantity); err != nil {
			return err
		}
		movements := []domain.StockMovement{
			{
				ProductID:      productID,
				WarehouseID:    fromID,
				Type:           domain.MovementTypeTransfer,
				QuantityChange: -quantity,
				Notes:          notes,
			},
			{
				ProductID:      productID,
				WarehouseID:    toID,
				Type:           domain.MovementTypeTransfer,
				QuantityChange: quantity,
				Notes:          notes,
			},
		}
		return tx.Create(&movements).Error
	})
}

// applyDelta changes one inventory row and the product total inside the
// caller's transaction. A missing row is created at zero first, so a pure
// debit against an unknown warehouse fails the negative check, not the read.
func applyDelta(tx *gorm.DB, productID, warehouseID uuid.UUID, delta int) error {
	var inv domain.ProductInventory
	result := lockForUpdate(tx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&inv)

	if result.Error == gorm.ErrRecordNotFound {
		inv = domain.ProductInventory{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    0,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return fmt.Errorf("failed to create inventory row: %w", err)
		}
	} else if result.Error != nil {
		return fmt.Errorf("failed to read inventory row: %w", result.Error)
	}

	newQuantity := inv.Quantity + delta
	if newQuantity < 0 {
		return ErrInsufficientStock
	}

	if err := tx.Model(&domain.ProductInventory{}).
		Where("id = ?", inv.ID).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update inventory row: %w", err)
	}

	if err := tx.Model(&domain.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to update product stock total: %w", err)
	}

	return nil
}
