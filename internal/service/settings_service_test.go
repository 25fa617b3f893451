package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/service"
	"github.com/pwsupply/erp-api/internal/storage"
	"github.com/pwsupply/erp-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSettingsTestService(t *testing.T, db *gorm.DB) *service.SettingsService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	revalidator := cache.NewRevalidator(cache.NewNoopCache(), zap.NewNop())
	return service.NewSettingsService(repository.NewSettingsRepository(db), store, revalidator, zap.NewNop())
}

func TestSettingsGetAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newSettingsTestService(t, db)

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Test Company", settings.CompanyName)

	updated, err := svc.Update(ctx, &domain.UpdateSettingsRequest{
		CompanyName:    "PW Supply Co., Ltd.",
		CompanyAddress: "123 Rama IV Rd, Bangkok",
	})
	require.NoError(t, err)
	assert.Equal(t, "PW Supply Co., Ltd.", updated.CompanyName)
	assert.Equal(t, "123 Rama IV Rd, Bangkok", updated.CompanyAddress)

	// still a single row
	var count int64
	require.NoError(t, db.Model(&domain.Settings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogoUploadAndDownload(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newSettingsTestService(t, db)

	// nothing uploaded yet
	_, err := svc.DownloadLogo(ctx)
	assert.ErrorIs(t, err, service.ErrNotFound)

	updated, err := svc.UploadLogo(ctx, "logo.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, updated.LogoPath)

	reader, err := svc.DownloadLogo(ctx)
	require.NoError(t, err)
	defer reader.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", buf.String())
}

func TestLogoReplacementDropsOldFile(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := newSettingsTestService(t, db)

	first, err := svc.UploadLogo(ctx, "old.png", "image/png", strings.NewReader("old"))
	require.NoError(t, err)

	second, err := svc.UploadLogo(ctx, "new.png", "image/png", strings.NewReader("new"))
	require.NoError(t, err)
	assert.NotEqual(t, first.LogoPath, second.LogoPath)

	reader, err := svc.DownloadLogo(ctx)
	require.NoError(t, err)
	defer reader.Close()

	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	require.NoError(t, err)
	assert.Equal(t, "new", buf.String())
}
