package models

// Currency is the denomination of an amount. USD is the unit of account
// for every aggregated total; VES amounts are divided by the BCV rate.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyVES Currency = "VES"
	CurrencyEUR Currency = "EUR"
)

// ItemType determines which side of net worth an item contributes to.
type ItemType string

const (
	ItemTypeAsset     ItemType = "asset"
	ItemTypeLiability ItemType = "liability"
)

// ItemCategory groups financial items. Savings assets are excluded from
// liquid totals; only Debt and Receivable items can be settled.
type ItemCategory string

const (
	CategoryBank       ItemCategory = "Bank"
	CategoryWallet     ItemCategory = "Wallet"
	CategoryCrypto     ItemCategory = "Crypto"
	CategoryCash       ItemCategory = "Cash"
	CategoryDebt       ItemCategory = "Debt"
	CategoryExpense    ItemCategory = "Expense"
	CategoryReceivable ItemCategory = "Receivable"
	CategoryIncome     ItemCategory = "Income"
	CategoryShopping   ItemCategory = "Shopping"
	CategorySavings    ItemCategory = "Savings"
)

// FinancialItem is a ledger entry: an asset (something held or owed to the
// user) or a liability (something owed or a recurring expense). Amount is
// always a non-negative magnitude; direction comes from Type.
type FinancialItem struct {
	Base
	Name      string       `gorm:"not null" json:"name"`
	Amount    float64      `gorm:"not null;default:0" json:"amount"`
	Currency  Currency     `gorm:"not null;default:'USD'" json:"currency"`
	Category  ItemCategory `gorm:"not null" json:"category"`
	Type      ItemType     `gorm:"not null" json:"type"`
	IsMonthly bool         `gorm:"default:false" json:"is_monthly"`
	Note      string       `json:"note,omitempty"`

	// DayOfMonth anchors monthly recurrence for agenda display only;
	// it plays no part in valuation.
	DayOfMonth *int `json:"day_of_month,omitempty"`

	// CustomExchangeRate overrides the global VES rate for this item.
	CustomExchangeRate *float64 `json:"custom_exchange_rate,omitempty"`
}

// IsSettleable reports whether the item is eligible for the debt/receivable
// settlement transition.
func (i *FinancialItem) IsSettleable() bool {
	return (i.Category == CategoryDebt || i.Category == CategoryReceivable) && i.Amount > 0
}

// IsLiquidAccount reports whether the item can act as the counter-party
// account in a money settlement or liquidation credit.
func (i *FinancialItem) IsLiquidAccount() bool {
	if i.Type != ItemTypeAsset {
		return false
	}
	switch i.Category {
	case CategoryBank, CategoryWallet, CategoryCrypto, CategoryCash:
		return true
	}
	return false
}
