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

func newInventoryService(db *gorm.DB) *service.InventoryService {
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	return service.NewInventoryService(
		repository.NewInventoryRepository(db),
		repository.NewStockMovementRepository(db),
		repository.NewProductRepository(db),
		revalidator,
		zap.NewNop(),
	)
}

func productStock(t *testing.T, db *gorm.DB, productID uuid.UUID) int {
	t.Helper()
	var product domain.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	return product.StockQuantity
}

func warehouseStock(t *testing.T, db *gorm.DB, productID, warehouseID uuid.UUID) int {
	t.Helper()
	var inv domain.ProductInventory
	err := db.First(&inv, "product_id = ? AND warehouse_id = ?", productID, warehouseID).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return inv.Quantity
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInventoryService(db)

	product := testutil.CreateTestProduct(t, db, "Steel pipe")
	warehouse := testutil.CreateTestWarehouse(t, db, "Main")

	err := svc.AdjustStock(ctx, product.ID, &domain.AdjustStockRequest{
		WarehouseID:    warehouse.ID,
		Type:           string(domain.MovementTypeReceive),
		QuantityChange: 10,
	})
	require.NoError(t, err)

	err = svc.AdjustStock(ctx, product.ID, &domain.AdjustStockRequest{
		WarehouseID:    warehouse.ID,
		Type:           string(domain.MovementTypeAdjustment),
		QuantityChange: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, warehouseStock(t, db, product.ID, warehouse.ID))
	assert.Equal(t, 15, productStock(t, db, product.ID))

	var movements int64
	require.NoError(t, db.Model(&domain.StockMovement{}).
		Where("product_id = ?", product.ID).Count(&movements).Error)
	assert.EqualValues(t, 2, movements)
}

func TestAdjustStockValidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInventoryService(db)

	product := testutil.CreateTestProduct(t, db, "Steel pipe")
	warehouse := testutil.CreateTestWarehouse(t, db, "Main")

	tests := []struct {
		name     string
		req      *domain.AdjustStockRequest
		expected error
	}{
		{
			name: "sale is not a manual adjustment type",
			req: &domain.AdjustStockRequest{
				WarehouseID:    warehouse.ID,
				Type:           string(domain.MovementTypeSale),
				QuantityChange: -1,
			},
			expected: service.ErrInvalidMovementType,
		},
		{
			name: "transfer is not a manual adjustment type",
			req: &domain.AdjustStockRequest{
				WarehouseID:    warehouse.ID,
				Type:           string(domain.MovementTypeTransfer),
				QuantityChange: 1,
			},
			expected: service.ErrInvalidMovementType,
		},
		{
			name: "zero quantity does nothing and is rejected",
			req: &domain.AdjustStockRequest{
				WarehouseID:    warehouse.ID,
				Type:           string(domain.MovementTypeReceive),
				QuantityChange: 0,
			},
			expected: service.ErrZeroQuantity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.AdjustStock(ctx, product.ID, tc.req)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	t.Run("unknown product", func(t *testing.T) {
		err := svc.AdjustStock(ctx, uuid.New(), &domain.AdjustStockRequest{
			WarehouseID:    warehouse.ID,
			Type:           string(domain.MovementTypeReceive),
			QuantityChange: 1,
		})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestAdjustStockNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInventoryService(db)

	product := testutil.CreateTestProduct(t, db, "Steel pipe")
	warehouse := testutil.CreateTestWarehouse(t, db, "Main")

	err := svc.AdjustStock(ctx, product.ID, &domain.AdjustStockRequest{
		WarehouseID:    warehouse.ID,
		Type:           string(domain.MovementTypeReceive),
		QuantityChange: 3,
	})
	require.NoError(t, err)

	err = svc.AdjustStock(ctx, product.ID, &domain.AdjustStockRequest{
		WarehouseID:    warehouse.ID,
		Type:           string(domain.MovementTypeAdjustment),
		QuantityChange: -4,
	})
	assert.ErrorIs(t, err, service.ErrInsufficientStock)

	// the rejected adjustment must leave no trace
	assert.Equal(t, 3, warehouseStock(t, db, product.ID, warehouse.ID))
	assert.Equal(t, 3, productStock(t, db, product.ID))

	var movements int64
	require.NoError(t, db.Model(&domain.StockMovement{}).
		Where("product_id = ?", product.ID).Count(&movements).Error)
	assert.EqualValues(t, 1, movements)
}

func TestTransferStock(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInventoryService(db)

	product := testutil.CreateTestProduct(t, db, "Steel pipe")
	source := testutil.CreateTestWarehouse(t, db, "Main")
	target := testutil.CreateTestWarehouse(t, db, "Overflow")

	require.NoError(t, svc.AdjustStock(ctx, product.ID, &domain.AdjustStockRequest{
		WarehouseID:    source.ID,
		Type:           string(domain.MovementTypeReceive),
		QuantityChange: 10,
	}))

	err := svc.TransferStock(ctx, product.ID, &domain.TransferStockRequest{
		FromWarehouseID: source.ID,
		ToWarehouseID:   target.ID,
		Quantity:        4,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, warehouseStock(t, db, product.ID, source.ID))
	assert.Equal(t, 4, warehouseStock(t, db, product.ID, target.ID))
	// a transfer moves stock around, the total is untouched
	assert.Equal(t, 10, productStock(t, db, product.ID))

	var transfers []domain.StockMovement
	require.NoError(t, db.
		Where("product_id = ? AND type = ?", product.ID, domain.MovementTypeTransfer).
		Order("quantity_change ASC").
		Find(&transfers).Error)
	require.Len(t, transfers, 2)
	assert.Equal(t, -4, transfers[0].QuantityChange)
	assert.Equal(t, source.ID, transfers[0].WarehouseID)
	assert.Equal(t, 4, transfers[1].QuantityChange)
	assert.Equal(t, target.ID, transfers[1].WarehouseID)
}

func TestTransferStockValidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newInventoryService(db)

	product := testutil.CreateTestProduct(t, db, "Steel pipe")
	source := testutil.CreateTestWarehouse(t, db, "Main")
	target := testutil.CreateTestWarehouse(t, db, "Overflow")

	err := svc.TransferStock(ctx, product.ID, &domain.TransferStockRequest{
		FromWarehouseID: source.ID,
		ToWarehouseID:   source.ID,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, service.ErrSameWarehouse)

	err = svc.TransferStock(ctx, product.ID, &domain.TransferStockRequest{
		FromWarehouseID: source.ID,
		ToWarehouseID:   target.ID,
		Quantity:        0,
	})
	assert.ErrorIs(t, err, service.ErrZeroQuantity)

	// nothing in the source warehouse yet
	err = svc.TransferStock(ctx, product.ID, &domain.TransferStockRequest{
		FromWarehouseID: source.ID,
		ToWarehouseID:   target.ID,
		Quantity:        1,
	})
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
}
