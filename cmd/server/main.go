package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/logistics/backend/internal/application/finance"
	invoiceapp "github.com/logistics/backend/internal/application/invoice"
	partnerapp "github.com/logistics/backend/internal/application/partner"
	pricingapp "github.com/logistics/backend/internal/application/pricing"
	reportapp "github.com/logistics/backend/internal/application/report"
	tradeapp "github.com/logistics/backend/internal/application/trade"
	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/pricing"
	"github.com/logistics/backend/internal/domain/shared/valueobject"
	"github.com/logistics/backend/internal/infrastructure/config"
	"github.com/logistics/backend/internal/infrastructure/logger"
	"github.com/logistics/backend/internal/infrastructure/persistence"
	"github.com/logistics/backend/internal/interfaces/http/handler"
	"github.com/logistics/backend/internal/interfaces/http/middleware"
	"github.com/logistics/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Logistics Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	ruleRepo := persistence.NewGormCommissionRuleRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Domain services
	resolver := pricing.NewCommissionResolver(ruleRepo)
	profitCalc := pricing.NewProfitCalculator()
	allocator := finance.NewPaymentAllocator()
	converter := finance.NewCurrencyConverter(valueobject.Currency(cfg.Finance.DisplayCurrency))

	// Application services
	customerService := partnerapp.NewCustomerService(customerRepo)
	orderService := tradeapp.NewOrderService(orderRepo, customerRepo, resolver, profitCalc, settingRepo, log)
	ruleService := pricingapp.NewRuleService(ruleRepo)
	settingsService := financeapp.NewSettingsService(settingRepo)
	paymentService := financeapp.NewPaymentService(orderRepo, customerRepo, allocator, log)
	invoiceService := invoiceapp.NewInvoiceService(orderRepo, customerRepo, settingsService, converter)
	reportService := reportapp.NewReportService(reportRepo, settingsService, converter)

	// HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService)
	orderHandler := handler.NewOrderHandler(orderService)
	commissionRuleHandler := handler.NewCommissionRuleHandler(ruleService)
	financeHandler := handler.NewFinanceHandler(paymentService, settingsService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack in order: request ID, panic recovery, request
	// logging, security headers, CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureHeaders())

	corsConfig := middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Partner domain (customers and their finances)
	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.POST("", customerHandler.Create)
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id", customerHandler.GetByID)
	customerRoutes.GET("/code/:code", customerHandler.GetByCode)
	customerRoutes.PUT("/:id", customerHandler.Update)
	customerRoutes.DELETE("/:id", customerHandler.Delete)
	customerRoutes.POST("/:id/activate", customerHandler.Activate)
	customerRoutes.POST("/:id/deactivate", customerHandler.Deactivate)
	customerRoutes.PUT("/:id/down-payment", financeHandler.UpdateDownPayment)
	customerRoutes.GET("/:id/financial-summary", financeHandler.GetCustomerSummary)

	// Order domain
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Create)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/number/:number", orderHandler.GetByNumber)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.POST("/:id/items", orderHandler.AddItem)
	orderRoutes.PUT("/:id/items/:itemId", orderHandler.UpdateItem)
	orderRoutes.DELETE("/:id/items/:itemId", orderHandler.RemoveItem)
	orderRoutes.PUT("/:id/shipping-actual", orderHandler.SetShippingActual)
	orderRoutes.POST("/:id/process", orderHandler.MarkProcessing)
	orderRoutes.POST("/:id/ship", orderHandler.MarkShipped)
	orderRoutes.POST("/:id/deliver", orderHandler.MarkDelivered)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.GET("/:id/invoice", invoiceHandler.GetInvoice)

	// Pricing domain
	ruleRoutes := router.NewDomainGroup("commission-rules", "/commission-rules")
	ruleRoutes.POST("", commissionRuleHandler.Create)
	ruleRoutes.GET("", commissionRuleHandler.List)
	ruleRoutes.GET("/:id", commissionRuleHandler.GetByID)
	ruleRoutes.PUT("/:id", commissionRuleHandler.Update)
	ruleRoutes.DELETE("/:id", commissionRuleHandler.Delete)
	ruleRoutes.POST("/:id/activate", commissionRuleHandler.Activate)
	ruleRoutes.POST("/:id/deactivate", commissionRuleHandler.Deactivate)

	// Settings
	settingRoutes := router.NewDomainGroup("settings", "/settings")
	settingRoutes.GET("/exchange-rate", financeHandler.GetExchangeRate)
	settingRoutes.PUT("/exchange-rate", financeHandler.UpdateExchangeRate)

	// Reports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.GET("/profit", reportHandler.GetProfitSummary)
	reportRoutes.GET("/commission-by-country", reportHandler.GetCommissionByCountry)

	// System
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(customerRoutes).
		Register(orderRoutes).
		Register(ruleRoutes).
		Register(settingRoutes).
		Register(reportRoutes).
		Register(systemRoutes)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for the health check endpoint
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
