package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"assetsnapshot/internal/config"
	"assetsnapshot/internal/database"
	"assetsnapshot/internal/handlers"
	"assetsnapshot/internal/logger"
	"assetsnapshot/internal/middleware"
	"assetsnapshot/internal/services"
	"assetsnapshot/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations (legacy schema rewrite happens first)
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	ownerService := services.NewOwnerService(db)
	configService := services.NewConfigService(db)
	fxRateService := services.NewFXRateService(db, nil, appConfig.FXAPIURL)
	bankService := services.NewBankService(db)
	accountService := services.NewAccountService(db)
	logService := services.NewLogService(db)
	assetService := services.NewAssetService(db)
	netWorthService := services.NewNetWorthService(db, fxRateService)
	seriesService := services.NewSeriesService(db, fxRateService)
	datasetService := services.NewDatasetService(db)

	// Seed defaults into an empty database
	if err := datasetService.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed defaults: %w", err)
	}
	if appConfig.SeedDemo {
		if err := datasetService.SeedDemoData(); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	ownerHandler := handlers.NewOwnerHandler(ownerService)
	configHandler := handlers.NewConfigHandler(configService)
	fxRateHandler := handlers.NewFXRateHandler(fxRateService)
	bankHandler := handlers.NewBankHandler(bankService)
	accountHandler := handlers.NewAccountHandler(accountService)
	logHandler := handlers.NewLogHandler(logService)
	assetHandler := handlers.NewAssetHandler(assetService)
	reportHandler := handlers.NewReportHandler(netWorthService, seriesService)
	datasetHandler := handlers.NewDatasetHandler(datasetService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := router.Group("/api")

	api.GET("/health", healthHandler.Health)

	api.GET("/config", configHandler.GetOptions)
	api.POST("/config", configHandler.AddOption)
	api.DELETE("/config", configHandler.RemoveOption)

	api.GET("/fx-rates", fxRateHandler.ListRates)
	api.POST("/fx-rates", fxRateHandler.UpsertRates)
	api.POST("/fx-rates/refresh", fxRateHandler.RefreshRates)

	api.GET("/owners", ownerHandler.ListOwners)
	api.POST("/owners", ownerHandler.CreateOwner)
	api.DELETE("/owners/:id", ownerHandler.DeleteOwner)

	// the original client calls top-level institutions "accounts"
	api.GET("/accounts", bankHandler.ListBanks)
	api.GET("/accounts/:id", bankHandler.GetBank)
	api.POST("/accounts", bankHandler.CreateBank)
	api.PUT("/accounts/:id", bankHandler.UpdateBank)
	api.DELETE("/accounts/:id", bankHandler.DeleteBank)

	api.POST("/sub-accounts", accountHandler.CreateAccount)
	api.PUT("/sub-accounts/:id", accountHandler.UpdateAccount)
	api.DELETE("/sub-accounts/:id", accountHandler.DeleteAccount)

	api.POST("/logs", logHandler.CreateLog)
	api.PUT("/logs/:id", logHandler.UpdateLog)
	api.DELETE("/logs/:id", logHandler.DeleteLog)

	api.GET("/assets", assetHandler.ListAssets)
	api.GET("/assets/:id", assetHandler.GetAsset)
	api.POST("/assets", assetHandler.CreateAsset)
	api.PUT("/assets/:id", assetHandler.UpdateAsset)
	api.DELETE("/assets/:id", assetHandler.DeleteAsset)

	api.POST("/asset-logs", assetHandler.CreateAssetLog)
	api.PUT("/asset-logs/:id", assetHandler.UpdateAssetLog)
	api.DELETE("/asset-logs/:id", assetHandler.DeleteAssetLog)

	api.GET("/net-worth", reportHandler.NetWorth)
	api.GET("/series", reportHandler.Series)

	api.GET("/export", datasetHandler.Export)
	api.POST("/import", datasetHandler.Import)
	api.POST("/reset", datasetHandler.Reset)
	api.GET("/export/xlsx", datasetHandler.ExportXLSX)
	api.POST("/import/xlsx", datasetHandler.ImportXLSX)

	log.Infof("Starting asset snapshot server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
