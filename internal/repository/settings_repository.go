package repository

import (
	"context"
	"time"

	"github.com/pwsupply/erp-api/internal/domain"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row
func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	err := r.db.WithContext(ctx).First(&settings, "id = ?", domain.SettingsRowID).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update writes company name and address on the singleton row in place
func (r *SettingsRepository) Update(ctx context.Context, companyName, companyAddress string) error {
	return r.db.WithContext(ctx).Model(&domain.Settings{}).
		Where("id = ?", domain.SettingsRowID).
		Updates(map[string]interface{}{
			"company_name":    companyName,
			"company_address": companyAddress,
			"updated_at":      time.Now(),
		}).Error
}

// UpdateLogoPath stores the uploaded logo's storage path
func (r *SettingsRepository) UpdateLogoPath(ctx context.Context, path string) error {
	return r.db.WithContext(ctx).Model(&domain.Settings{}).
		Where("id = ?", domain.SettingsRowID).
		Updates(map[string]interface{}{
			"logo_path":  path,
			"updated_at": time.Now(),
		}).Error
}
