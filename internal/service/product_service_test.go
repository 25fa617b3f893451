package service_test

import (
	"context"
	"testing"

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

func newProductTestService(db *gorm.DB) *service.ProductService {
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	return service.NewProductService(repository.NewProductRepository(db), revalidator, zap.NewNop())
}

func TestProductCreateWithOpeningStock(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newProductTestService(db)

	warehouse := testutil.CreateTestWarehouse(t, db, "Main")

	created, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:          "Steel pipe",
		Price:         120.50,
		StockQuantity: 25,
		WarehouseID:   &warehouse.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, created.StockQuantity)

	// opening stock lands in the warehouse with a receive movement
	var inv domain.ProductInventory
	require.NoError(t, db.First(&inv, "product_id = ? AND warehouse_id = ?", created.ID, warehouse.ID).Error)
	assert.Equal(t, 25, inv.Quantity)

	var movement domain.StockMovement
	require.NoError(t, db.First(&movement, "product_id = ?", created.ID).Error)
	assert.Equal(t, domain.MovementTypeReceive, movement.Type)
	assert.Equal(t, 25, movement.QuantityChange)
}

func TestProductCreateWithoutWarehouseSkipsLedger(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newProductTestService(db)

	created, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:          "Catalog-only item",
		StockQuantity: 10,
	})
	require.NoError(t, err)

	var movements int64
	require.NoError(t, db.Model(&domain.StockMovement{}).
		Where("product_id = ?", created.ID).Count(&movements).Error)
	assert.EqualValues(t, 0, movements)
}

func TestListLowStock(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newProductTestService(db)

	low := &domain.Product{Name: "Nearly out", StockQuantity: 2, LowStockThreshold: 5}
	require.NoError(t, db.Create(low).Error)
	fine := &domain.Product{Name: "Plenty", StockQuantity: 50, LowStockThreshold: 5}
	require.NoError(t, db.Create(fine).Error)
	// threshold zero means low-stock tracking is off
	untracked := &domain.Product{Name: "Untracked", StockQuantity: 0, LowStockThreshold: 0}
	require.NoError(t, db.Create(untracked).Error)

	products, err := svc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Nearly out", products[0].Name)
	assert.True(t, products[0].LowStock)
}

func TestProductUpdateKeepsStock(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newProductTestService(db)

	created, err := svc.Create(ctx, &domain.CreateProductRequest{
		Name:          "Steel pipe",
		Price:         100,
		StockQuantity: 7,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &domain.UpdateProductRequest{
		Name:  "Steel pipe 2in",
		Price: 110,
	})
	require.NoError(t, err)
	assert.Equal(t, "Steel pipe 2in", updated.Name)
	// descriptive updates never touch the stock total
	assert.Equal(t, 7, updated.StockQuantity)
}
