package service

import (
	"context"
	"fmt"

	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/legacy"
	"github.com/pwsupply/erp-api/internal/repository"
	"go.uber.org/zap"
)

// LegacySyncService imports customers from the legacy accounting system.
// Matching is by tax id; customers already known are left untouched.
type LegacySyncService struct {
	client       *legacy.Client
	customerRepo *repository.CustomerRepository
	revalidator  *cache.Revalidator
	logger       *zap.Logger
}

func NewLegacySyncService(
	client *legacy.Client,
	customerRepo *repository.CustomerRepository,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *LegacySyncService {
	return &LegacySyncService{
		client:       client,
		customerRepo: customerRepo,
		revalidator:  revalidator,
		logger:       logger,
	}
}

// Enabled reports whether the legacy integration is configured
func (s *LegacySyncService) Enabled() bool {
	return s.client.IsEnabled()
}

// SyncCustomers imports unknown customers and returns how many were created
func (s *LegacySyncService) SyncCustomers(ctx context.Context) (int, error) {
	if !s.client.IsEnabled() {
		return 0, ErrLegacyDisabled
	}

	legacyCustomers, err := s.client.ListCustomers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read legacy customers: %w", err)
	}

	imported := 0
	for _, lc := range legacyCustomers {
		if lc.TaxID == "" {
			continue
		}
		existing, err := s.customerRepo.FindByTaxID(ctx, lc.TaxID)
		if err != nil {
			return imported, fmt.Errorf("failed to check for existing customer: %w", err)
		}
		if existing != nil {
			continue
		}

		customer := &domain.Customer{
			Name:    lc.Name,
			TaxID:   lc.TaxID,
			Address: lc.Address,
			Phone:   lc.Phone,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return imported, fmt.Errorf("failed to import customer %q: %w", lc.Code, err)
		}
		imported++
	}

	if imported > 0 {
		s.revalidator.EntityChanged(ctx, cache.EntityCustomer, nil)
	}
	s.logger.Info("legacy customer sync finished",
		zap.Int("seen", len(legacyCustomers)),
		zap.Int("imported", imported))

	return imported, nil
}
