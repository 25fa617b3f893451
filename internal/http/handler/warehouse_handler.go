package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/service"
	"go.uber.org/zap"
)

type WarehouseHandler struct {
	warehouseService *service.WarehouseService
	logger           *zap.Logger
}

func NewWarehouseHandler(warehouseService *service.WarehouseService, logger *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService, logger: logger}
}

// List godoc
// @Summary List warehouses
// @Tags Warehouses
// @Produce json
// @Success 200 {array} domain.WarehouseDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /warehouses [get]
func (h *WarehouseHandler) List(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.warehouseService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list warehouses", err)
		return
	}

	respondJSON(w, http.StatusOK, warehouses)
}

// GetByID godoc
// @Summary Get warehouse by ID
// @Tags Warehouses
// @Produce json
// @Param id path string true "Warehouse ID" format(uuid)
// @Success 200 {object} domain.WarehouseDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid warehouse ID format")
		return
	}

	warehouse, err := h.warehouseService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to get warehouse", err)
		return
	}

	respondJSON(w, http.StatusOK, warehouse)
}

// Create godoc
// @Summary Create warehouse
// @Tags Warehouses
// @Accept json
// @Produce json
// @Param request body domain.CreateWarehouseRequest true "Warehouse data"
// @Success 201 {object} domain.WarehouseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /warehouses [post]
func (h *WarehouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	warehouse, err := h.warehouseService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to create warehouse", err)
		return
	}

	respondJSON(w, http.StatusCreated, warehouse)
}

// Update godoc
// @Summary Update warehouse
// @Tags Warehouses
// @Accept json
// @Produce json
// @Param id path string true "Warehouse ID" format(uuid)
// @Param request body domain.UpdateWarehouseRequest true "Warehouse data"
// @Success 200 {object} domain.WarehouseDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /warehouses/{id} [put]
func (h *WarehouseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid warehouse ID format")
		return
	}

	var req domain.UpdateWarehouseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	warehouse, err := h.warehouseService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to update warehouse", err)
		return
	}

	respondJSON(w, http.StatusOK, warehouse)
}

// Delete godoc
// @Summary Delete warehouse
// @Tags Warehouses
// @Param id path string true "Warehouse ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid warehouse ID format")
		return
	}

	if err := h.warehouseService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, h.logger, "failed to delete warehouse", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
