package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestLiquidationFlow(t *testing.T) {
	app := setupApp(t)

	accountID := app.createItem(t,
		`{"name":"Banco","amount":50,"currency":"USD","category":"Bank","type":"asset"}`)
	assetID := app.createAsset(t,
		`{"name":"Laptop vieja","estimated_value":300,"currency":"USD"}`)

	rec := app.request("POST", "/api/v1/assets/"+assetID+"/liquidate",
		fmt.Sprintf(`{"sale_price":350,"target_account_id":%q}`, accountID))
	if rec.Code != http.StatusOK {
		t.Fatalf("liquidate failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	account := result["updated_account"].(map[string]interface{})

	// The account is credited with the sale price, not the estimate.
	if account["amount"] != float64(400) {
		t.Errorf("expected balance 400, got %v", account["amount"])
	}
	if result["removed_asset_id"] != assetID {
		t.Errorf("expected removed asset %s, got %v", assetID, result["removed_asset_id"])
	}

	rec = app.request("GET", "/api/v1/assets/"+assetID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for liquidated asset, got %d", rec.Code)
	}
	if got := app.getItemAmount(t, accountID); got != 400 {
		t.Errorf("expected persisted balance 400, got %v", got)
	}
}

func TestLiquidationFlow_InvalidTarget(t *testing.T) {
	app := setupApp(t)

	debtID := app.createItem(t,
		`{"name":"Deuda","amount":100,"currency":"USD","category":"Debt","type":"liability"}`)
	assetID := app.createAsset(t,
		`{"name":"Laptop vieja","estimated_value":300,"currency":"USD"}`)

	// A liability cannot receive the proceeds.
	rec := app.request("POST", "/api/v1/assets/"+assetID+"/liquidate",
		fmt.Sprintf(`{"sale_price":350,"target_account_id":%q}`, debtID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}

	// Nothing moved.
	rec = app.request("GET", "/api/v1/assets/"+assetID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected asset untouched, got %d", rec.Code)
	}
	if got := app.getItemAmount(t, debtID); got != 100 {
		t.Errorf("expected debt unchanged at 100, got %v", got)
	}
}
