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

type ResponsiblePersonHandler struct {
	personService *service.ResponsiblePersonService
	logger        *zap.Logger
}

func NewResponsiblePersonHandler(personService *service.ResponsiblePersonService, logger *zap.Logger) *ResponsiblePersonHandler {
	return &ResponsiblePersonHandler{personService: personService, logger: logger}
}

// List godoc
// @Summary List responsible persons
// @Tags ResponsiblePersons
// @Produce json
// @Success 200 {array} domain.ResponsiblePersonDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /responsible-persons [get]
func (h *ResponsiblePersonHandler) List(w http.ResponseWriter, r *http.Request) {
	persons, err := h.personService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list responsible persons", err)
		return
	}

	respondJSON(w, http.StatusOK, persons)
}

// GetByID godoc
// @Summary Get responsible person by ID
// @Tags ResponsiblePersons
// @Produce json
// @Param id path string true "Responsible person ID" format(uuid)
// @Success 200 {object} domain.ResponsiblePersonDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /responsible-persons/{id} [get]
func (h *ResponsiblePersonHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid responsible person ID format")
		return
	}

	person, err := h.personService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to get responsible person", err)
		return
	}

	respondJSON(w, http.StatusOK, person)
}

// Create godoc
// @Summary Create responsible person
// @Tags ResponsiblePersons
// @Accept json
// @Produce json
// @Param request body domain.CreateResponsiblePersonRequest true "Responsible person data"
// @Success 201 {object} domain.ResponsiblePersonDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /responsible-persons [post]
func (h *ResponsiblePersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateResponsiblePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	person, err := h.personService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to create responsible person", err)
		return
	}

	respondJSON(w, http.StatusCreated, person)
}

// Update godoc
// @Summary Update responsible person
// @Tags ResponsiblePersons
// @Accept json
// @Produce json
// @Param id path string true "Responsible person ID" format(uuid)
// @Param request body domain.UpdateResponsiblePersonRequest true "Responsible person data"
// @Success 200 {object} domain.ResponsiblePersonDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /responsible-persons/{id} [put]
func (h *ResponsiblePersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid responsible person ID format")
		return
	}

	var req domain.UpdateResponsiblePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	person, err := h.personService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to update responsible person", err)
		return
	}

	respondJSON(w, http.StatusOK, person)
}

// Delete godoc
// @Summary Delete responsible person
// @Tags ResponsiblePersons
// @Param id path string true "Responsible person ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /responsible-persons/{id} [delete]
func (h *ResponsiblePersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid responsible person ID format")
		return
	}

	if err := h.personService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, h.logger, "failed to delete responsible person", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
