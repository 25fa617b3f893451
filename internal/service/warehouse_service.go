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

type WarehouseService struct {
	warehouseRepo *repository.WarehouseRepository
	revalidator   *cache.Revalidator
	logger        *zap.Logger
}

func NewWarehouseService(
	warehouseRepo *repository.WarehouseRepository,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		revalidator:   revalidator,
		logger:        logger,
	}
}

func (s *WarehouseService) Create(ctx context.Context, req *domain.CreateWarehouseRequest) (*domain.WarehouseDTO, error) {
	warehouse := &domain.Warehouse{
		Name:    req.Name,
		Address: req.Address,
	}

	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityWarehouse, nil)

	dto := mapper.ToWarehouseDTO(warehouse)
	return &dto, nil
}

func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.WarehouseDTO, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}

	dto := mapper.ToWarehouseDTO(warehouse)
	return &dto, nil
}

func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateWarehouseRequest) (*domain.WarehouseDTO, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}

	warehouse.Name = req.Name
	warehouse.Address = req.Address

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, fmt.Errorf("failed to update warehouse: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityWarehouse, nil)

	dto := mapper.ToWarehouseDTO(warehouse)
	return &dto, nil
}

func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.warehouseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete warehouse: %w", err)
	}

	s.revalidator.EntityChanged(ctx, cache.EntityWarehouse, nil)
	return nil
}

func (s *WarehouseService) List(ctx context.Context) ([]domain.WarehouseDTO, error) {
	warehouses, err := s.warehouseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}

	dtos := make([]domain.WarehouseDTO, len(warehouses))
	for i := range warehouses {
		dtos[i] = mapper.ToWarehouseDTO(&warehouses[i])
	}
	return dtos, nil
}
