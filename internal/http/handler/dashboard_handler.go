package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pwsupply/erp-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// Metrics godoc
// @Summary Dashboard metrics
// @Description Entity counts, revenue figures, recent invoices and low stock products
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardMetricsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.Metrics(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to compute dashboard metrics", err)
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// ReportSummary godoc
// @Summary Yearly report summary
// @Description Monthly paid revenue, invoice status distribution and top customers for a year
// @Tags Dashboard
// @Produce json
// @Param year query int false "Report year (defaults to current year)"
// @Success 200 {object} domain.ReportSummaryDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/summary [get]
func (h *DashboardHandler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year == 0 {
		year = time.Now().Year()
	}

	summary, err := h.dashboardService.ReportSummary(r.Context(), year)
	if err != nil {
		handleServiceError(w, r, h.logger, "failed to build report summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
