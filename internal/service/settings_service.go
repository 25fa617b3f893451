package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/mapper"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SettingsService struct {
	settingsRepo *repository.SettingsRepository
	store        storage.Storage
	revalidator  *cache.Revalidator
	logger       *zap.Logger
}

func NewSettingsService(
	settingsRepo *repository.SettingsRepository,
	store storage.Storage,
	revalidator *cache.Revalidator,
	logger *zap.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		store:        store,
		revalidator:  revalidator,
		logger:       logger,
	}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.SettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	dto := mapper.ToSettingsDTO(settings)
	return &dto, nil
}

// Update writes the singleton row in place. Company details render on
// every view, so the whole view cache goes.
func (s *SettingsService) Update(ctx context.Context, req *domain.UpdateSettingsRequest) (*domain.SettingsDTO, error) {
	if err := s.settingsRepo.Update(ctx, req.CompanyName, req.CompanyAddress); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.logger.Info("settings updated", zap.String("company_name", req.CompanyName))
	s.revalidator.EntityChanged(ctx, cache.EntitySettings, nil)

	return s.Get(ctx)
}

// UploadLogo stores the logo through the storage layer, replacing any
// previous logo, and records the new path on the settings row.
func (s *SettingsService) UploadLogo(ctx context.Context, filename, contentType string, data io.Reader) (*domain.SettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	path, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store logo: %w", err)
	}

	if err := s.settingsRepo.UpdateLogoPath(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to save logo path: %w", err)
	}

	if settings.LogoPath != "" && settings.LogoPath != path {
		if err := s.store.Delete(ctx, settings.LogoPath); err != nil {
			s.logger.Warn("failed to remove previous logo",
				zap.String("path", settings.LogoPath), zap.Error(err))
		}
	}

	s.logger.Info("logo uploaded", zap.String("path", path), zap.Int64("size", size))
	s.revalidator.EntityChanged(ctx, cache.EntitySettings, nil)

	return s.Get(ctx)
}

// DownloadLogo streams the stored logo
func (s *SettingsService) DownloadLogo(ctx context.Context) (io.ReadCloser, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.LogoPath == "" {
		return nil, ErrNotFound
	}

	reader, err := s.store.Download(ctx, settings.LogoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	return reader, nil
}
