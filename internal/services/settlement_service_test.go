package services

import (
	"testing"

	"patrimonio/internal/models"
	"patrimonio/internal/testutil"
)

func TestSettle_Money(t *testing.T) {
	t.Run("paying_debt_decreases_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)
		account := testutil.CreateTestBankAccount(t, db, 200)

		result, err := svc.Settle(debt.ID, 40, SettlementMoney, SettlementDetails{AccountID: account.ID, Note: "abono"})
		testutil.AssertNoError(t, err)

		if result.UpdatedItem.Amount != 60 {
			t.Errorf("expected debt amount 60, got %v", result.UpdatedItem.Amount)
		}
		if result.UpdatedCounterparty.Amount != 160 {
			t.Errorf("expected account amount 160, got %v", result.UpdatedCounterparty.Amount)
		}
		if result.UpdatedItem.Note != "abono" {
			t.Errorf("expected note to be overwritten, got %q", result.UpdatedItem.Note)
		}

		// Verify persisted state matches the returned mutation description.
		var stored models.FinancialItem
		db.Where("id = ?", account.ID).First(&stored)
		if stored.Amount != 160 {
			t.Errorf("expected stored account amount 160, got %v", stored.Amount)
		}
	})

	t.Run("collecting_receivable_increases_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		receivable := testutil.CreateTestReceivable(t, db, 100)
		account := testutil.CreateTestBankAccount(t, db, 200)

		result, err := svc.Settle(receivable.ID, 40, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertNoError(t, err)

		if result.UpdatedItem.Amount != 60 {
			t.Errorf("expected receivable amount 60, got %v", result.UpdatedItem.Amount)
		}
		if result.UpdatedCounterparty.Amount != 240 {
			t.Errorf("expected account amount 240, got %v", result.UpdatedCounterparty.Amount)
		}
	})

	t.Run("missing_account_rejected_before_mutation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)

		_, err := svc.Settle(debt.ID, 40, SettlementMoney, SettlementDetails{})
		testutil.AssertAppError(t, err, "COUNTERPARTY_REQUIRED")

		var stored models.FinancialItem
		db.Where("id = ?", debt.ID).First(&stored)
		if stored.Amount != 100 {
			t.Errorf("rejected settlement must not mutate: expected 100, got %v", stored.Amount)
		}
	})

	t.Run("unknown_account_id_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)

		_, err := svc.Settle(debt.ID, 40, SettlementMoney, SettlementDetails{AccountID: "no-such-id"})
		testutil.AssertAppError(t, err, "COUNTERPARTY_REQUIRED")
	})

	t.Run("non_liquid_counterparty_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)
		otherDebt := testutil.CreateTestDebt(t, db, 50)

		_, err := svc.Settle(debt.ID, 40, SettlementMoney, SettlementDetails{AccountID: otherDebt.ID})
		testutil.AssertAppError(t, err, "COUNTERPARTY_NOT_LIQUID")
	})
}

func TestSettle_Clamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettlementService(db, false)

	debt := testutil.CreateTestDebt(t, db, 100)
	account := testutil.CreateTestBankAccount(t, db, 500)

	result, err := svc.Settle(debt.ID, 150, SettlementMoney, SettlementDetails{AccountID: account.ID})
	testutil.AssertNoError(t, err)

	if result.UpdatedItem.Amount != 0 {
		t.Errorf("over-settled item must clamp to 0, got %v", result.UpdatedItem.Amount)
	}
	if result.ItemDeleted {
		t.Error("zero-balance item must not be auto-deleted by default")
	}

	// The zero-balance record stays visible until explicitly deleted.
	var stored models.FinancialItem
	if err := db.Where("id = ?", debt.ID).First(&stored).Error; err != nil {
		t.Fatalf("expected settled item to remain: %v", err)
	}
}

func TestSettle_AutoDeletePolicy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettlementService(db, true)

	debt := testutil.CreateTestDebt(t, db, 100)
	account := testutil.CreateTestBankAccount(t, db, 500)

	t.Run("partial_settlement_keeps_item", func(t *testing.T) {
		result, err := svc.Settle(debt.ID, 30, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertNoError(t, err)
		if result.ItemDeleted {
			t.Error("partially settled item must not be deleted")
		}
	})

	t.Run("full_settlement_deletes_item", func(t *testing.T) {
		result, err := svc.Settle(debt.ID, 70, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertNoError(t, err)
		if !result.ItemDeleted {
			t.Error("expected item to be deleted under auto-delete policy")
		}

		var count int64
		db.Model(&models.FinancialItem{}).Where("id = ?", debt.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected item to be gone, found %d rows", count)
		}
	})
}

func TestSettle_AssetOut(t *testing.T) {
	t.Run("removes_asset_from_inventory", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)
		asset := testutil.CreateTestPhysicalAsset(t, db, 80)

		result, err := svc.Settle(debt.ID, 80, SettlementAssetOut, SettlementDetails{AssetID: asset.ID})
		testutil.AssertNoError(t, err)

		if result.UpdatedItem.Amount != 20 {
			t.Errorf("expected debt amount 20, got %v", result.UpdatedItem.Amount)
		}
		if result.RemovedAssetID != asset.ID {
			t.Errorf("expected removed asset ID %s, got %s", asset.ID, result.RemovedAssetID)
		}

		var count int64
		db.Model(&models.PhysicalAsset{}).Where("id = ?", asset.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected asset removed from inventory, found %d rows", count)
		}
	})

	t.Run("missing_asset_reference_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)

		_, err := svc.Settle(debt.ID, 80, SettlementAssetOut, SettlementDetails{})
		testutil.AssertAppError(t, err, "SETTLEMENT_ASSET_REQUIRED")
	})

	t.Run("unknown_asset_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettlementService(db, false)

		debt := testutil.CreateTestDebt(t, db, 100)

		_, err := svc.Settle(debt.ID, 80, SettlementAssetOut, SettlementDetails{AssetID: "no-such-asset"})
		testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
	})
}

func TestSettle_AssetIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettlementService(db, false)

	receivable := testutil.CreateTestItem(t, db, 5000, models.CurrencyVES, models.CategoryReceivable, models.ItemTypeAsset)

	result, err := svc.Settle(receivable.ID, 2000, SettlementAssetIn, SettlementDetails{
		NewAssetName:        "Bicicleta",
		NewAssetDescription: "Recibida como pago parcial",
	})
	testutil.AssertNoError(t, err)

	if result.UpdatedItem.Amount != 3000 {
		t.Errorf("expected receivable amount 3000, got %v", result.UpdatedItem.Amount)
	}
	if result.CreatedAsset == nil {
		t.Fatal("expected created asset in result")
	}
	if result.CreatedAsset.EstimatedValue != 2000 {
		t.Errorf("expected created asset value 2000, got %v", result.CreatedAsset.EstimatedValue)
	}
	// The received asset inherits the settled item's currency.
	if result.CreatedAsset.Currency != models.CurrencyVES {
		t.Errorf("expected created asset currency VES, got %s", result.CreatedAsset.Currency)
	}

	var count int64
	db.Model(&models.PhysicalAsset{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 asset in inventory, got %d", count)
	}
}

func TestSettle_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewSettlementService(db, false)

	debt := testutil.CreateTestDebt(t, db, 100)
	account := testutil.CreateTestBankAccount(t, db, 200)

	t.Run("zero_amount", func(t *testing.T) {
		_, err := svc.Settle(debt.ID, 0, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertAppError(t, err, "INVALID_SETTLEMENT_AMOUNT")
	})

	t.Run("negative_amount", func(t *testing.T) {
		_, err := svc.Settle(debt.ID, -10, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertAppError(t, err, "INVALID_SETTLEMENT_AMOUNT")
	})

	t.Run("unknown_item", func(t *testing.T) {
		_, err := svc.Settle("no-such-item", 10, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertAppError(t, err, "ITEM_NOT_FOUND")
	})

	t.Run("non_settleable_category", func(t *testing.T) {
		_, err := svc.Settle(account.ID, 10, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertAppError(t, err, "ITEM_NOT_SETTLEABLE")
	})

	t.Run("zero_balance_item_not_settleable", func(t *testing.T) {
		paid := testutil.CreateTestDebt(t, db, 0)
		_, err := svc.Settle(paid.ID, 10, SettlementMoney, SettlementDetails{AccountID: account.ID})
		testutil.AssertAppError(t, err, "ITEM_NOT_SETTLEABLE")
	})

	t.Run("unknown_method", func(t *testing.T) {
		_, err := svc.Settle(debt.ID, 10, SettlementMethod("barter"), SettlementDetails{})
		testutil.AssertAppError(t, err, "INVALID_SETTLEMENT_METHOD")
	})
}
