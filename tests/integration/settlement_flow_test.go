package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestSettlementFlow_MoneyDebt(t *testing.T) {
	app := setupApp(t)

	accountID := app.createItem(t,
		`{"name":"Banco","amount":200,"currency":"USD","category":"Bank","type":"asset"}`)
	debtID := app.createItem(t,
		`{"name":"Deuda tarjeta","amount":100,"currency":"USD","category":"Debt","type":"liability"}`)

	// Partial settlement: debt shrinks, account pays.
	rec := app.request("POST", "/api/v1/items/"+debtID+"/settle",
		fmt.Sprintf(`{"amount":40,"method":"money","account_id":%q}`, accountID))
	if rec.Code != http.StatusOK {
		t.Fatalf("settle failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	item := result["updated_item"].(map[string]interface{})
	if item["amount"] != float64(60) {
		t.Errorf("expected remaining debt 60, got %v", item["amount"])
	}
	counterparty := result["updated_counterparty"].(map[string]interface{})
	if counterparty["amount"] != float64(160) {
		t.Errorf("expected account balance 160, got %v", counterparty["amount"])
	}

	// Both records persisted.
	if got := app.getItemAmount(t, debtID); got != 60 {
		t.Errorf("expected persisted debt 60, got %v", got)
	}
	if got := app.getItemAmount(t, accountID); got != 160 {
		t.Errorf("expected persisted balance 160, got %v", got)
	}

	// Overpayment clamps the debt to zero; the item survives as a record.
	rec = app.request("POST", "/api/v1/items/"+debtID+"/settle",
		fmt.Sprintf(`{"amount":100,"method":"money","account_id":%q}`, accountID))
	if rec.Code != http.StatusOK {
		t.Fatalf("settle failed: %d %s", rec.Code, rec.Body.String())
	}
	if got := app.getItemAmount(t, debtID); got != 0 {
		t.Errorf("expected debt clamped to 0, got %v", got)
	}
	if got := app.getItemAmount(t, accountID); got != 60 {
		t.Errorf("expected balance 60 after full payoff, got %v", got)
	}

	// A zero-balance debt is no longer settleable.
	rec = app.request("POST", "/api/v1/items/"+debtID+"/settle",
		fmt.Sprintf(`{"amount":10,"method":"money","account_id":%q}`, accountID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for settled debt, got %d", rec.Code)
	}
}

func TestSettlementFlow_MoneyReceivable(t *testing.T) {
	app := setupApp(t)

	accountID := app.createItem(t,
		`{"name":"Efectivo","amount":50,"currency":"USD","category":"Cash","type":"asset"}`)
	receivableID := app.createItem(t,
		`{"name":"Prestamo a Juan","amount":100,"currency":"USD","category":"Receivable","type":"asset"}`)

	rec := app.request("POST", "/api/v1/items/"+receivableID+"/settle",
		fmt.Sprintf(`{"amount":30,"method":"money","account_id":%q}`, accountID))
	if rec.Code != http.StatusOK {
		t.Fatalf("settle failed: %d %s", rec.Code, rec.Body.String())
	}

	// Receivable collections credit the account.
	if got := app.getItemAmount(t, receivableID); got != 70 {
		t.Errorf("expected remaining receivable 70, got %v", got)
	}
	if got := app.getItemAmount(t, accountID); got != 80 {
		t.Errorf("expected balance 80, got %v", got)
	}
}

func TestSettlementFlow_RejectionLeavesStateUntouched(t *testing.T) {
	app := setupApp(t)

	accountID := app.createItem(t,
		`{"name":"Banco","amount":200,"currency":"USD","category":"Bank","type":"asset"}`)
	expenseID := app.createItem(t,
		`{"name":"Alquiler","amount":300,"currency":"USD","category":"Expense","type":"liability"}`)

	// Expenses are not settleable.
	rec := app.request("POST", "/api/v1/items/"+expenseID+"/settle",
		fmt.Sprintf(`{"amount":50,"method":"money","account_id":%q}`, accountID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}

	if got := app.getItemAmount(t, expenseID); got != 300 {
		t.Errorf("expected expense unchanged at 300, got %v", got)
	}
	if got := app.getItemAmount(t, accountID); got != 200 {
		t.Errorf("expected balance unchanged at 200, got %v", got)
	}
}

func TestSettlementFlow_AssetOut(t *testing.T) {
	app := setupApp(t)

	debtID := app.createItem(t,
		`{"name":"Deuda mecanico","amount":500,"currency":"USD","category":"Debt","type":"liability"}`)
	assetID := app.createAsset(t,
		`{"name":"Bicicleta","estimated_value":450,"currency":"USD"}`)

	rec := app.request("POST", "/api/v1/items/"+debtID+"/settle",
		fmt.Sprintf(`{"amount":450,"method":"asset_out","asset_id":%q}`, assetID))
	if rec.Code != http.StatusOK {
		t.Fatalf("settle failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["removed_asset_id"] != assetID {
		t.Errorf("expected removed asset %s, got %v", assetID, result["removed_asset_id"])
	}

	// The surrendered asset is gone.
	rec = app.request("GET", "/api/v1/assets/"+assetID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for surrendered asset, got %d", rec.Code)
	}
	if got := app.getItemAmount(t, debtID); got != 50 {
		t.Errorf("expected remaining debt 50, got %v", got)
	}
}

func TestSettlementFlow_AssetIn(t *testing.T) {
	app := setupApp(t)

	receivableID := app.createItem(t,
		`{"name":"Prestamo a Maria","amount":200,"currency":"VES","category":"Receivable","type":"asset"}`)

	rec := app.request("POST", "/api/v1/items/"+receivableID+"/settle",
		`{"amount":200,"method":"asset_in","new_asset_name":"Telefono usado"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("settle failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	created := result["created_asset"].(map[string]interface{})
	if created["name"] != "Telefono usado" {
		t.Errorf("expected created asset name, got %v", created["name"])
	}
	if created["estimated_value"] != float64(200) {
		t.Errorf("expected estimated value 200, got %v", created["estimated_value"])
	}
	// The new asset inherits the receivable's currency.
	if created["currency"] != "VES" {
		t.Errorf("expected VES currency, got %v", created["currency"])
	}

	rec = app.request("GET", "/api/v1/assets/"+created["id"].(string), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected created asset to be retrievable, got %d", rec.Code)
	}
}
