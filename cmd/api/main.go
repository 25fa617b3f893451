package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pwsupply/erp-api/docs"
	"github.com/pwsupply/erp-api/internal/auth"
	"github.com/pwsupply/erp-api/internal/cache"
	"github.com/pwsupply/erp-api/internal/config"
	"github.com/pwsupply/erp-api/internal/database"
	"github.com/pwsupply/erp-api/internal/http/handler"
	"github.com/pwsupply/erp-api/internal/http/middleware"
	"github.com/pwsupply/erp-api/internal/http/router"
	"github.com/pwsupply/erp-api/internal/jobs"
	"github.com/pwsupply/erp-api/internal/legacy"
	"github.com/pwsupply/erp-api/internal/logger"
	"github.com/pwsupply/erp-api/internal/repository"
	"github.com/pwsupply/erp-api/internal/service"
	"github.com/pwsupply/erp-api/internal/storage"
	"go.uber.org/zap"
)

// jobTimeout bounds each background job run
const jobTimeout = 5 * time.Minute

// @title PW Supply ERP API
// @version 1.0
// @description ERP API for customers, inventory, invoicing, quotations and employee leave

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// View cache: Redis when configured, otherwise a no-op that always misses
	var viewCache cache.Cache = cache.NewNoopCache()
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("Redis unreachable, view caching disabled", zap.Error(err))
		} else {
			viewCache = redisCache
			log.Info("View cache connected", zap.String("addr", cfg.Redis.Addr))
		}
	} else {
		log.Info("No Redis address configured, view caching disabled")
	}
	revalidator := cache.NewRevalidator(viewCache, log)

	// Legacy accounting connection (optional, read-only)
	legacyClient, err := legacy.NewClient(&cfg.LegacyDB, log)
	if err != nil {
		log.Warn("Legacy accounting connection failed, continuing without it", zap.Error(err))
	} else if legacyClient != nil {
		log.Info("Legacy accounting database connected")
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	personRepo := repository.NewResponsiblePersonRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	tokenIssuer := auth.NewTokenIssuer(
		cfg.Auth.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	authService := service.NewAuthService(userRepo, tokenIssuer, log)
	docNumbers := service.NewDocumentNumberService(invoiceRepo, quotationRepo, log)
	customerService := service.NewCustomerService(customerRepo, revalidator, log)
	personService := service.NewResponsiblePersonService(personRepo, revalidator, log)
	productService := service.NewProductService(productRepo, revalidator, log)
	warehouseService := service.NewWarehouseService(warehouseRepo, revalidator, log)
	inventoryService := service.NewInventoryService(inventoryRepo, movementRepo, productRepo, revalidator, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, personRepo, docNumbers, revalidator, log)
	quotationService := service.NewQuotationService(quotationRepo, personRepo, docNumbers, revalidator, log)
	employeeService := service.NewEmployeeService(employeeRepo, revalidator, log)
	leaveService := service.NewLeaveService(leaveRepo, employeeRepo, revalidator, log)
	settingsService := service.NewSettingsService(settingsRepo, fileStorage, revalidator, log)
	dashboardService := service.NewDashboardService(customerRepo, productRepo, invoiceRepo, quotationRepo, log)
	legacySyncService := service.NewLegacySyncService(legacyClient, customerRepo, revalidator, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokenIssuer, cfg.ApiKey.Value, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	customerHandler := handler.NewCustomerHandler(customerService, legacySyncService, log)
	personHandler := handler.NewResponsiblePersonHandler(personService, log)
	productHandler := handler.NewProductHandler(productService, inventoryService, log)
	warehouseHandler := handler.NewWarehouseHandler(warehouseService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	quotationHandler := handler.NewQuotationHandler(quotationService, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, leaveService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, cfg.Storage.MaxUploadSizeMB, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		viewCache,
		authMiddleware,
		rateLimiter,
		authHandler,
		customerHandler,
		personHandler,
		productHandler,
		warehouseHandler,
		invoiceHandler,
		quotationHandler,
		employeeHandler,
		settingsHandler,
		dashboardHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterOverdueJob(scheduler, invoiceService, log, cfg.Jobs.OverdueCron, jobTimeout); err != nil {
			log.Error("Failed to register overdue job", zap.Error(err))
		}

		if cfg.Jobs.LegacySyncEnable && legacySyncService.Enabled() {
			if err := jobs.RegisterLegacySyncJob(scheduler, legacySyncService, log, cfg.Jobs.LegacySyncCron, jobTimeout); err != nil {
				log.Error("Failed to register legacy sync job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started", zap.Strings("jobs", scheduler.GetJobNames()))
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if err := viewCache.Close(); err != nil {
			log.Warn("Error closing view cache", zap.Error(err))
		}
		if legacyClient != nil {
			if err := legacyClient.Close(); err != nil {
				log.Warn("Error closing legacy accounting connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
