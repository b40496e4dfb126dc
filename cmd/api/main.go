package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"patrimonio/internal/config"
	"patrimonio/internal/database"
	"patrimonio/internal/handlers"
	"patrimonio/internal/logger"
	"patrimonio/internal/middleware"
	"patrimonio/internal/ratefeed"
	"patrimonio/internal/services"
	"patrimonio/internal/validator"
)

// @title           Patrimonio API
// @version         1.0
// @description     Patrimonio is a multi-currency net-worth tracker: it keeps a ledger of assets, liabilities, and physical possessions across USD, VES, and EUR, and values everything in USD.

// @host      localhost:8080
// @BasePath  /api/v1

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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()

	var rateSource services.RateSource
	if appConfig.RatesFeedURL != "" {
		rateSource = ratefeed.NewClient(nil, appConfig.RatesFeedURL)
	}

	itemService := services.NewItemService(db)
	assetService := services.NewAssetService(db)
	settlementService := services.NewSettlementService(db, appConfig.SettlementAutoDelete)
	ratesService := services.NewRatesService(db, rateSource)
	summaryService := services.NewSummaryService(db, ratesService)

	// Initialize handlers
	itemHandler := handlers.NewItemHandler(itemService, settlementService)
	assetHandler := handlers.NewAssetHandler(assetService)
	ratesHandler := handlers.NewRatesHandler(ratesService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Background rates refresh
	if rateSource != nil {
		go refreshRatesLoop(ratesService, appConfig.RatesRefreshInterval)
	}

	router := newRouter(itemHandler, assetHandler, ratesHandler, summaryHandler)

	log.Infof("Starting Patrimonio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// newRouter builds the full HTTP surface. Custom binding validators are
// registered here: the request structs use them on almost every write path,
// and binding a tag that was never registered panics inside the validator.
func newRouter(
	itemHandler *handlers.ItemHandler,
	assetHandler *handlers.AssetHandler,
	ratesHandler *handlers.RatesHandler,
	summaryHandler *handlers.SummaryHandler,
) *gin.Engine {
	validator.Register()

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Financial item routes
	items := v1.Group("/items")
	items.POST("", itemHandler.CreateItem)
	items.POST("/bulk", itemHandler.ImportItems)
	items.GET("", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.POST("/:id/settle", itemHandler.SettleItem)

	// Physical asset routes
	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.POST("/:id/liquidate", assetHandler.LiquidateAsset)

	// Exchange rates routes
	rates := v1.Group("/rates")
	rates.GET("", ratesHandler.GetRates)
	rates.PUT("", ratesHandler.UpdateRates)
	rates.POST("/refresh", ratesHandler.RefreshRates)

	// Summary routes
	summary := v1.Group("/summary")
	summary.GET("", summaryHandler.GetSummary)
	summary.GET("/pending", summaryHandler.GetPending)

	return router
}

// refreshRatesLoop refreshes rates from the upstream feed once at startup
// and then on every tick. Failures are logged and retried on the next tick.
func refreshRatesLoop(ratesService services.RatesServicer, interval time.Duration) {
	log := logger.Get()

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := ratesService.Refresh(ctx); err != nil {
			log.Warnf("Background rates refresh failed: %v", err)
		}
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		refresh()
	}
}
