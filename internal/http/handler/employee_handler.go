package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/service"
	"go.uber.org/zap"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
	leaveService    *service.LeaveService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, leaveService *service.LeaveService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		leaveService:    leaveService,
		logger:          logger,
	}
}

// List godoc
// @Summary List employees
// @Tags Employees
// @Produce json
// @Success 200 {array} domain.EmployeeDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list employees", err)
		return
	}

	respondJSON(w, http.StatusOK, employees)
}

// GetByID godoc
// @Summary Get employee by ID
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Success 200 {object} domain.EmployeeDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	employee, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to get employee", err)
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

// Create godoc
// @Summary Create employee
// @Description Create an employee. Leave balances for the current year are seeded from the leave type defaults.
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body domain.CreateEmployeeRequest true "Employee data"
// @Success 201 {object} domain.EmployeeDTO
// @Failure 400 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	employee, err := h.employeeService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to create employee", err)
		return
	}

	w.Header().Set("Location", "/api/v1/employees/"+employee.ID.String())
	respondJSON(w, http.StatusCreated, employee)
}

// Update godoc
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Param request body domain.UpdateEmployeeRequest true "Employee data"
// @Success 200 {object} domain.EmployeeDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var req domain.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	employee, err := h.employeeService.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to update employee", err)
		return
	}

	respondJSON(w, http.StatusOK, employee)
}

// Delete godoc
// @Summary Delete employee
// @Tags Employees
// @Param id path string true "Employee ID" format(uuid)
// @Success 204 "No Content"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, h.logger, "failed to delete employee", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordLeave godoc
// @Summary Record leave for an employee
// @Description Record a leave request and deduct the days from the balance for the leave date's year, atomically
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Param request body domain.RecordLeaveRequest true "Leave data"
// @Success 201 {object} domain.LeaveRequestDTO
// @Failure 400 {object} domain.ErrorResponse "Insufficient balance or no balance row"
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees/{id}/leave [post]
func (h *EmployeeHandler) RecordLeave(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var req domain.RecordLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	record, err := h.leaveService.RecordLeave(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to record leave", err)
		return
	}

	respondJSON(w, http.StatusCreated, record)
}

// ListLeaveBalances godoc
// @Summary List an employee's leave balances
// @Tags Employees
// @Produce json
// @Param id path string true "Employee ID" format(uuid)
// @Param year query int false "Balance year (defaults to current year)"
// @Success 200 {array} domain.LeaveBalanceDTO
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /employees/{id}/leave-balances [get]
func (h *EmployeeHandler) ListLeaveBalances(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = time.Now().Year()
	}

	balances, err := h.leaveService.ListBalances(r.Context(), id, year)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list leave balances", err)
		return
	}

	respondJSON(w, http.StatusOK, balances)
}

// ListLeaveRequests godoc
// @Summary List leave requests
// @Tags Employees
// @Produce json
// @Param employeeId query string false "Filter by employee" format(uuid)
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.LeaveRequestDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leave-requests [get]
func (h *EmployeeHandler) ListLeaveRequests(w http.ResponseWriter, r *http.Request) {
	var employeeID *uuid.UUID
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid employee ID format")
			return
		}
		employeeID = &id
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.leaveService.ListRequests(r.Context(), employeeID, page, pageSize)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list leave requests", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListLeaveTypes godoc
// @Summary List leave types
// @Tags Employees
// @Produce json
// @Success 200 {array} domain.LeaveTypeDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leave-types [get]
func (h *EmployeeHandler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to list leave types", err)
		return
	}

	respondJSON(w, http.StatusOK, types)
}
