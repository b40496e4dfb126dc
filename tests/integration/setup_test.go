package integration

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"patrimonio/internal/handlers"
	"patrimonio/internal/logger"
	"patrimonio/internal/middleware"
	"patrimonio/internal/models"
	"patrimonio/internal/services"
	"patrimonio/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.FinancialItem{},
		&models.PhysicalAsset{},
		&models.ExchangeRates{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
// The rate source is nil, so rates are managed through PUT /rates.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	itemService := services.NewItemService(db)
	assetService := services.NewAssetService(db)
	settlementService := services.NewSettlementService(db, false)
	ratesService := services.NewRatesService(db, nil)
	summaryService := services.NewSummaryService(db, ratesService)

	// Handlers
	itemHandler := handlers.NewItemHandler(itemService, settlementService)
	assetHandler := handlers.NewAssetHandler(assetService)
	ratesHandler := handlers.NewRatesHandler(ratesService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	items := v1.Group("/items")
	items.POST("", itemHandler.CreateItem)
	items.POST("/bulk", itemHandler.ImportItems)
	items.GET("", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem)
	items.PUT("/:id", itemHandler.UpdateItem)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.POST("/:id/settle", itemHandler.SettleItem)

	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.POST("/:id/liquidate", assetHandler.LiquidateAsset)

	rates := v1.Group("/rates")
	rates.GET("", ratesHandler.GetRates)
	rates.PUT("", ratesHandler.UpdateRates)
	rates.POST("/refresh", ratesHandler.RefreshRates)

	summary := v1.Group("/summary")
	summary.GET("", summaryHandler.GetSummary)
	summary.GET("/pending", summaryHandler.GetPending)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createItem creates a financial item through the API and returns its ID.
func (app *testApp) createItem(t *testing.T, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/items", body)
	if rec.Code != 201 {
		t.Fatalf("create item failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	item := result["item"].(map[string]interface{})
	return item["id"].(string)
}

// createAsset creates a physical asset through the API and returns its ID.
func (app *testApp) createAsset(t *testing.T, body string) string {
	t.Helper()
	rec := app.request("POST", "/api/v1/assets", body)
	if rec.Code != 201 {
		t.Fatalf("create asset failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	asset := result["asset"].(map[string]interface{})
	return asset["id"].(string)
}

// getItemAmount reads an item back through the API and returns its amount.
func (app *testApp) getItemAmount(t *testing.T, itemID string) float64 {
	t.Helper()
	rec := app.request("GET", "/api/v1/items/"+itemID, "")
	if rec.Code != 200 {
		t.Fatalf("get item failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	item := result["item"].(map[string]interface{})
	return item["amount"].(float64)
}
