package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/service"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	maxUploadBytes  int64
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, maxUploadSizeMB int64, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		maxUploadBytes:  maxUploadSizeMB * 1024 * 1024,
		logger:          logger,
	}
}

// Get godoc
// @Summary Get company settings
// @Tags Settings
// @Produce json
// @Success 200 {object} domain.SettingsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to get settings", err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// Update godoc
// @Summary Update company settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body domain.UpdateSettingsRequest true "Settings data"
// @Success 200 {object} domain.SettingsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	settings, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to update settings", err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// UploadLogo godoc
// @Summary Upload the company logo
// @Description Upload a logo as multipart form data under the "file" field. Replaces any previous logo.
// @Tags Settings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Logo image"
// @Success 200 {object} domain.SettingsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /settings/logo [post]
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing 'file' form field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	settings, err := h.settingsService.UploadLogo(r.Context(), header.Filename, contentType, file)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to upload logo", err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

// DownloadLogo godoc
// @Summary Download the company logo
// @Tags Settings
// @Produce octet-stream
// @Success 200 {file} binary
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /settings/logo [get]
func (h *SettingsHandler) DownloadLogo(w http.ResponseWriter, r *http.Request) {
	reader, err := h.settingsService.DownloadLogo(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to download logo", err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("logo stream interrupted", zap.Error(err))
	}
}
