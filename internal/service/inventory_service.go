package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/mapper"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
	movementRepo  *repository.StockMovementRepository
	productRepo   *repository.ProductRepository
	revalidator   *cache.Revalidator
	logger        *zap.Logger
}

func NewInventoryService(
	inventoryRepo *repository.InventoryRepository,
	movementRepo *repository.StockMovementRepository,
	productRepo *repository.ProductRepository,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		revalidator:   revalidator,
		logger:        logger,
	}
}

// AdjustStock validates the request before touching the database, then
// applies the change and its ledger row in one transaction.
func (s *InventoryService) AdjustStock(ctx context.Context, productID uuid.UUID, req *domain.AdjustStockRequest) error {
	movementType := domain.MovementType(req.Type)
	if movementType != domain.MovementTypeReceive && movementType != domain.MovementTypeAdjustment {
		return ErrInvalidMovementType
	}
	if req.QuantityChange == 0 {
		return ErrZeroQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	err := s.inventoryRepo.AdjustStock(ctx, productID, req.WarehouseID, movementType, req.QuantityChange, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return ErrInsufficientStock
		}
		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", productID.String()),
		zap.String("warehouse_id", req.WarehouseID.String()),
		zap.String("type", req.Type),
		zap.Int("quantity_change", req.QuantityChange))
	s.revalidator.EntityChanged(ctx, cache.EntityProduct, nil)

	return nil
}

// TransferStock validates the request before touching the database, then
// debits, credits and writes both ledger rows in one transaction.
func (s *InventoryService) TransferStock(ctx context.Context, productID uuid.UUID, req *domain.TransferStockRequest) error {
	if req.FromWarehouseID == req.ToWarehouseID {
		return ErrSameWarehouse
	}
	if req.Quantity <= 0 {
		return ErrZeroQuantity
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}

	err := s.inventoryRepo.TransferStock(ctx, productID, req.FromWarehouseID, req.ToWarehouseID, req.Quantity, req.Notes)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return ErrInsufficientStock
		}
		return fmt.Errorf("failed to transfer stock: %w", err)
	}

	s.logger.Info("stock transferred",
		zap.String("product_id", productID.String()),
		zap.String("from_warehouse", req.FromWarehouseID.String()),
		zap.String("to_warehouse", req.ToWarehouseID.String()),
		zap.Int("quantity", req.Quantity))
	s.revalidator.EntityChanged(ctx, cache.EntityProduct, nil)

	return nil
}

// ListInventory returns the per-warehouse stock rows for a product
func (s *InventoryService) ListInventory(ctx context.Context, productID uuid.UUID) ([]domain.WarehouseInventoryDTO, error) {
	rows, err := s.inventoryRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	dtos := make([]domain.WarehouseInventoryDTO, len(rows))
	for i := range rows {
		dtos[i] = mapper.ToWarehouseInventoryDTO(&rows[i])
	}
	return dtos, nil
}

// ListMovements returns the movement ledger for a product, newest first
func (s *InventoryService) ListMovements(ctx context.Context, productID uuid.UUID, page, pageSize int) (*domain.PaginatedResponse, error) {
	page, pageSize = clampPage(page, pageSize)

	movements, total, err := s.movementRepo.ListByProduct(ctx, productID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}

	dtos := make([]domain.StockMovementDTO, len(movements))
	for i := range movements {
		dtos[i] = mapper.ToStockMovementDTO(&movements[i])
	}

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}
