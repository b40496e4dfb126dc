package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"patrimonio/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestItem creates a financial item with the given shape.
func CreateTestItem(t *testing.T, db *gorm.DB, amount float64, currency models.Currency, category models.ItemCategory, itemType models.ItemType) *models.FinancialItem {
	t.Helper()

	item := &models.FinancialItem{
		Name:     fmt.Sprintf("Test Item %d", nextID()),
		Amount:   amount,
		Currency: currency,
		Category: category,
		Type:     itemType,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

// CreateTestBankAccount creates a liquid USD bank account with the given balance.
func CreateTestBankAccount(t *testing.T, db *gorm.DB, balance float64) *models.FinancialItem {
	t.Helper()
	return CreateTestItem(t, db, balance, models.CurrencyUSD, models.CategoryBank, models.ItemTypeAsset)
}

// CreateTestDebt creates a one-off USD debt with the given balance.
func CreateTestDebt(t *testing.T, db *gorm.DB, balance float64) *models.FinancialItem {
	t.Helper()
	return CreateTestItem(t, db, balance, models.CurrencyUSD, models.CategoryDebt, models.ItemTypeLiability)
}

// CreateTestReceivable creates a USD receivable with the given balance.
func CreateTestReceivable(t *testing.T, db *gorm.DB, balance float64) *models.FinancialItem {
	t.Helper()
	return CreateTestItem(t, db, balance, models.CurrencyUSD, models.CategoryReceivable, models.ItemTypeAsset)
}

// CreateTestPhysicalAsset creates a physical asset with the given estimated value.
func CreateTestPhysicalAsset(t *testing.T, db *gorm.DB, estimatedValue float64) *models.PhysicalAsset {
	t.Helper()

	asset := &models.PhysicalAsset{
		Name:           fmt.Sprintf("Test Asset %d", nextID()),
		EstimatedValue: estimatedValue,
		Currency:       models.CurrencyUSD,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test physical asset: %v", err)
	}
	return asset
}

// CreateTestRates stores an exchange rates row with the given BCV rate.
func CreateTestRates(t *testing.T, db *gorm.DB, usdBCV float64) *models.ExchangeRates {
	t.Helper()

	rates := &models.ExchangeRates{
		UsdBCV:      usdBCV,
		EurBCV:      usdBCV * 1.08,
		LastUpdated: time.Now(),
	}
	if err := db.Create(rates).Error; err != nil {
		t.Fatalf("failed to create test rates: %v", err)
	}
	return rates
}
