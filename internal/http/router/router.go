package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pwsupply/erp-api/internal/auth"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/config"
	"github.com/pwsupply/erp-api/internal/database"
	"github.com/pwsupply/erp-api/internal/http/handler"
	"github.com/pwsupply/erp-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/pwsupply/erp-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	viewCache      cache.Cache
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter

	authHandler       *handler.AuthHandler
	customerHandler   *handler.CustomerHandler
	personHandler     *handler.ResponsiblePersonHandler
	productHandler    *handler.ProductHandler
	warehouseHandler  *handler.WarehouseHandler
	invoiceHandler    *handler.InvoiceHandler
	quotationHandler  *handler.QuotationHandler
	employeeHandler   *handler.EmployeeHandler
	settingsHandler   *handler.SettingsHandler
	dashboardHandler  *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	viewCache cache.Cache,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	customerHandler *handler.CustomerHandler,
	personHandler *handler.ResponsiblePersonHandler,
	productHandler *handler.ProductHandler,
	warehouseHandler *handler.WarehouseHandler,
	invoiceHandler *handler.InvoiceHandler,
	quotationHandler *handler.QuotationHandler,
	employeeHandler *handler.EmployeeHandler,
	settingsHandler *handler.SettingsHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		viewCache:        viewCache,
		authMiddleware:   authMiddleware,
		rateLimiter:      rateLimiter,
		authHandler:      authHandler,
		customerHandler:  customerHandler,
		personHandler:    personHandler,
		productHandler:   productHandler,
		warehouseHandler: warehouseHandler,
		invoiceHandler:   invoiceHandler,
		quotationHandler: quotationHandler,
		employeeHandler:  employeeHandler,
		settingsHandler:  settingsHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	// locale before logging so request logs carry the resolved locale
	r.Use(middleware.Locale(rt.cfg.App.DefaultLocale))
	r.Use(middleware.Logging(rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check (database plus the view cache when configured)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		if err := rt.viewCache.Ping(r.Context()); err != nil {
			rt.logger.Warn("View cache health check failed", zap.Error(err))
			checks["cache"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			// a dead cache degrades performance, not correctness
		} else {
			checks["cache"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	viewCache := middleware.NewViewCache(
		rt.viewCache,
		time.Duration(rt.cfg.Redis.ViewTTLSec)*time.Second,
		rt.logger,
	)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/auth/me", rt.authHandler.Me)

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.With(viewCache.Handler).Get("/", rt.customerHandler.List)
				r.Post("/", rt.customerHandler.Create)
				r.Post("/import-legacy", rt.customerHandler.ImportLegacy)
				r.With(viewCache.Handler).Get("/{id}", rt.customerHandler.GetByID)
				r.Put("/{id}", rt.customerHandler.Update)
				r.Delete("/{id}", rt.customerHandler.Delete)
			})

			// Responsible persons
			r.Route("/responsible-persons", func(r chi.Router) {
				r.Get("/", rt.personHandler.List)
				r.Post("/", rt.personHandler.Create)
				r.Get("/{id}", rt.personHandler.GetByID)
				r.Put("/{id}", rt.personHandler.Update)
				r.Delete("/{id}", rt.personHandler.Delete)
			})

			// Products, inventory and stock movements
			r.Route("/products", func(r chi.Router) {
				r.With(viewCache.Handler).Get("/", rt.productHandler.List)
				r.Post("/", rt.productHandler.Create)
				r.Get("/low-stock", rt.productHandler.ListLowStock)
				r.With(viewCache.Handler).Get("/{id}", rt.productHandler.GetByID)
				r.Put("/{id}", rt.productHandler.Update)
				r.Delete("/{id}", rt.productHandler.Delete)
				r.Get("/{id}/inventory", rt.productHandler.ListInventory)
				r.Get("/{id}/movements", rt.productHandler.ListMovements)
				r.Post("/{id}/stock/adjust", rt.productHandler.AdjustStock)
				r.Post("/{id}/stock/transfer", rt.productHandler.TransferStock)
			})

			// Warehouses
			r.Route("/warehouses", func(r chi.Router) {
				r.Get("/", rt.warehouseHandler.List)
				r.Post("/", rt.warehouseHandler.Create)
				r.Get("/{id}", rt.warehouseHandler.GetByID)
				r.Put("/{id}", rt.warehouseHandler.Update)
				r.Delete("/{id}", rt.warehouseHandler.Delete)
			})

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.With(viewCache.Handler).Get("/", rt.invoiceHandler.List)
				r.Post("/", rt.invoiceHandler.Create)
				r.Get("/next-number", rt.invoiceHandler.NextNumber)
				r.Get("/{id}", rt.invoiceHandler.GetByID)
				r.Put("/{id}", rt.invoiceHandler.Update)
				r.Delete("/{id}", rt.invoiceHandler.Delete)
				r.Patch("/{id}/status", rt.invoiceHandler.UpdateStatus)
			})

			// Quotations
			r.Route("/quotations", func(r chi.Router) {
				r.With(viewCache.Handler).Get("/", rt.quotationHandler.List)
				r.Post("/", rt.quotationHandler.Create)
				r.Get("/next-number", rt.quotationHandler.NextNumber)
				r.Get("/{id}", rt.quotationHandler.GetByID)
				r.Put("/{id}", rt.quotationHandler.Update)
				r.Delete("/{id}", rt.quotationHandler.Delete)
				r.Patch("/{id}/status", rt.quotationHandler.UpdateStatus)
				r.Post("/{id}/convert", rt.quotationHandler.Convert)
			})

			// Employees and leave
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", rt.employeeHandler.List)
				r.Post("/", rt.employeeHandler.Create)
				r.Get("/{id}", rt.employeeHandler.GetByID)
				r.Put("/{id}", rt.employeeHandler.Update)
				r.Delete("/{id}", rt.employeeHandler.Delete)
				r.Post("/{id}/leave", rt.employeeHandler.RecordLeave)
				r.Get("/{id}/leave-balances", rt.employeeHandler.ListLeaveBalances)
			})
			r.Get("/leave-requests", rt.employeeHandler.ListLeaveRequests)
			r.Get("/leave-types", rt.employeeHandler.ListLeaveTypes)

			// Settings
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", rt.settingsHandler.Get)
				r.Put("/", rt.settingsHandler.Update)
				r.Post("/logo", rt.settingsHandler.UploadLogo)
				r.Get("/logo", rt.settingsHandler.DownloadLogo)
			})

			// Dashboard & reports
			r.With(viewCache.Handler).Get("/dashboard/metrics", rt.dashboardHandler.Metrics)
			r.With(viewCache.Handler).Get("/reports/summary", rt.dashboardHandler.ReportSummary)
		})
	})

	return r
}
