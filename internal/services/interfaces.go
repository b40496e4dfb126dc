package services

import (
	"context"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/ratefeed"
	"patrimonio/internal/valuation"
)

// ItemInput carries the caller-supplied fields for creating a financial item.
type ItemInput struct {
	Name               string
	Amount             float64
	Currency           models.Currency
	Category           models.ItemCategory
	Type               models.ItemType
	IsMonthly          bool
	DayOfMonth         *int
	Note               string
	CustomExchangeRate *float64
}

// ItemUpdateFields holds optional fields for updating a financial item.
// Nil pointers leave the stored value untouched. The Clear flags null the
// corresponding optional column; a clear flag combined with a new value for
// the same field is rejected.
type ItemUpdateFields struct {
	Name               *string
	Amount             *float64
	Currency           *models.Currency
	Category           *models.ItemCategory
	Type               *models.ItemType
	IsMonthly          *bool
	DayOfMonth         *int
	Note               *string
	CustomExchangeRate *float64

	ClearDayOfMonth         bool
	ClearCustomExchangeRate bool
}

// ItemFilter holds optional filter parameters for listing items.
type ItemFilter struct {
	Category *models.ItemCategory
	Type     *models.ItemType
	Currency *models.Currency
}

// ItemServicer defines the contract for financial item business logic.
type ItemServicer interface {
	CreateItem(input ItemInput) (*models.FinancialItem, error)
	ImportItems(inputs []ItemInput) ([]models.FinancialItem, error)
	GetItems(page pagination.PageRequest, filter ItemFilter) (*pagination.PageResponse[models.FinancialItem], error)
	GetItemByID(itemID string) (*models.FinancialItem, error)
	UpdateItem(itemID string, fields ItemUpdateFields) (*models.FinancialItem, error)
	DeleteItem(itemID string) error
}

// AssetInput carries the caller-supplied fields for creating a physical asset.
type AssetInput struct {
	Name           string
	EstimatedValue float64
	Currency       models.Currency
	Description    string
}

// AssetUpdateFields holds optional fields for updating a physical asset.
type AssetUpdateFields struct {
	Name           *string
	EstimatedValue *float64
	Currency       *models.Currency
	Description    *string
}

// LiquidationResult describes the state change applied by a liquidation:
// the credited account and the asset removed from inventory.
type LiquidationResult struct {
	UpdatedAccount *models.FinancialItem `json:"updated_account"`
	RemovedAssetID string                `json:"removed_asset_id"`
	SalePrice      float64               `json:"sale_price"`
}

// AssetServicer defines the contract for physical asset business logic,
// including the liquidation transition.
type AssetServicer interface {
	CreateAsset(input AssetInput) (*models.PhysicalAsset, error)
	GetAssets(page pagination.PageRequest) (*pagination.PageResponse[models.PhysicalAsset], error)
	GetAssetByID(assetID string) (*models.PhysicalAsset, error)
	UpdateAsset(assetID string, fields AssetUpdateFields) (*models.PhysicalAsset, error)
	DeleteAsset(assetID string) error
	Liquidate(assetID string, salePrice float64, targetAccountID string) (*LiquidationResult, error)
}

// SettlementMethod selects how a debt or receivable is settled.
type SettlementMethod string

const (
	// SettlementMoney moves cash between the settled item and a liquid account.
	SettlementMoney SettlementMethod = "money"
	// SettlementAssetOut surrenders a physical asset to pay a debt.
	SettlementAssetOut SettlementMethod = "asset_out"
	// SettlementAssetIn receives a physical asset in lieu of a cash payment.
	SettlementAssetIn SettlementMethod = "asset_in"
)

// SettlementDetails carries the method-specific inputs of a settlement.
type SettlementDetails struct {
	AccountID           string
	AssetID             string
	NewAssetName        string
	NewAssetDescription string
	Note                string
}

// SettlementResult describes the full set of mutations applied by a
// settlement, derived from a single consistent snapshot.
type SettlementResult struct {
	UpdatedItem         *models.FinancialItem `json:"updated_item"`
	UpdatedCounterparty *models.FinancialItem `json:"updated_counterparty,omitempty"`
	RemovedAssetID      string                `json:"removed_asset_id,omitempty"`
	CreatedAsset        *models.PhysicalAsset `json:"created_asset,omitempty"`
	ItemDeleted         bool                  `json:"item_deleted"`
}

// SettlementServicer defines the contract for the debt/receivable
// settlement transition.
type SettlementServicer interface {
	Settle(itemID string, amount float64, method SettlementMethod, details SettlementDetails) (*SettlementResult, error)
}

// RateSource fetches published exchange rates from an upstream feed.
type RateSource interface {
	Fetch(ctx context.Context) (ratefeed.Rates, error)
}

// RatesServicer defines the contract for exchange rate state.
type RatesServicer interface {
	GetRates() (*models.ExchangeRates, error)
	UpdateRates(usdBCV, eurBCV, binanceBuy, binanceSell float64) (*models.ExchangeRates, error)
	Refresh(ctx context.Context) (*models.ExchangeRates, error)
	// Current returns the stored rates, or a zero-valued context when rates
	// were never initialized; valuation degrades VES conversions to 0.
	Current() models.ExchangeRates
}

// PendingSummary groups the outstanding debts and receivables for alerts.
type PendingSummary struct {
	Debts       []valuation.PendingEntry `json:"debts"`
	Receivables []valuation.PendingEntry `json:"receivables"`
}

// SummaryServicer computes aggregate valuation metrics from current state.
type SummaryServicer interface {
	GetSummary() (*valuation.Summary, error)
	GetPending() (*PendingSummary, error)
}
