package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/service"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService   *service.ProductService
	inventoryService *service.InventoryService
	logger           *zap.Logger
}

func NewProductHandler(productService *service.ProductService, inventoryService *service.InventoryService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService:   productService,
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// List godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ProductDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")

	result, err := h.productService.List(r.Context(), page, pageSize, search)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list products", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListLowStock godoc
// @Summary List products at or below their low stock threshold
// @Tags Products
// @Produce json
// @Success 200 {array} domain.ProductDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/low-stock [get]
func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListLowStock(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list low stock products", err)
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// GetByID godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Success 200 {object} domain.ProductDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to get product", err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Create godoc
// @Summary Create product
// @Description Create a product. When a warehouse and positive stock quantity are given, the quantity is recorded there as an opening stock movement.
// @Tags Products
// @Accept json
// @Produce json
// @Param request body domain.CreateProductRequest true "Product data"
// @Success 201 {object} domain.ProductDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to create product", err)
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, product)
}

// Update godoc
// @Summary Update product
// @Description Update descriptive fields. Stock changes go through the stock endpoints so the movement ledger stays complete.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Param request body domain.UpdateProductRequest true "Product data"
// @Success 200 {object} domain.ProductDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req domain.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to update product", err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

// Delete godoc
// @Summary Delete product
// @Tags Products
// @Param id path string true "Product ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, h.logger, "failed to delete product", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListInventory godoc
// @Summary List per-warehouse stock for a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Success 200 {array} domain.WarehouseInventoryDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id}/inventory [get]
func (h *ProductHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	inventory, err := h.inventoryService.ListInventory(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list inventory", err)
		return
	}

	respondJSON(w, http.StatusOK, inventory)
}

// ListMovements godoc
// @Summary List stock movement history for a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.StockMovementDTO}
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id}/movements [get]
func (h *ProductHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.inventoryService.ListMovements(r.Context(), id, page, pageSize)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list stock movements", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AdjustStock godoc
// @Summary Adjust stock in a warehouse
// @Description Receive stock or apply a manual adjustment. Negative adjustments cannot drive a warehouse quantity below zero.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Param request body domain.AdjustStockRequest true "Adjustment"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse "Invalid movement, zero quantity, or insufficient stock"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id}/stock/adjust [post]
func (h *ProductHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req domain.AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.inventoryService.AdjustStock(r.Context(), id, &req); err != nil {
		handleServiceError(w, r, h.logger, "failed to adjust stock", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TransferStock godoc
// @Summary Transfer stock between warehouses
// @Description Move quantity from one warehouse to another in a single transaction. The ledger records a transfer_out and a transfer_in.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID" format(uuid)
// @Param request body domain.TransferStockRequest true "Transfer"
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse "Same warehouse or insufficient stock"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /products/{id}/stock/transfer [post]
func (h *ProductHandler) TransferStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req domain.TransferStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.inventoryService.TransferStock(r.Context(), id, &req); err != nil {
		handleServiceError(w, r, h.logger, "failed to transfer stock", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
