// Package valuation converts heterogeneous per-item currency amounts into a
// single unit of account (USD) and aggregates them into net-worth metrics.
// Everything here is a pure function of its inputs: rates are passed
// explicitly, nothing is cached, and every arithmetic step goes through the
// money package.
package valuation

import (
	"patrimonio/internal/models"
	"patrimonio/internal/money"
)

// EurToUSD is the fixed EUR multiplier. It is deliberately not fetched:
// downstream totals must stay reproducible against this constant.
const EurToUSD = 1.08

// Valuable is any amount that can be converted to USD. FinancialItem
// satisfies it directly; physical assets are wrapped via AssetValue.
type Valuable struct {
	Amount             float64
	Currency           models.Currency
	CustomExchangeRate *float64
}

// ItemValue adapts a FinancialItem for conversion.
func ItemValue(i models.FinancialItem) Valuable {
	return Valuable{Amount: i.Amount, Currency: i.Currency, CustomExchangeRate: i.CustomExchangeRate}
}

// AssetValue adapts a PhysicalAsset for conversion. Physical assets never
// carry a custom rate.
func AssetValue(a models.PhysicalAsset) Valuable {
	return Valuable{Amount: a.EstimatedValue, Currency: a.Currency}
}

// ToUSD converts a value to USD. Policy, in precedence order:
//
//  1. USD amounts pass through unchanged.
//  2. EUR amounts are multiplied by the fixed EurToUSD rate.
//  3. VES amounts are divided by the item's custom rate when present and
//     positive, otherwise by the global usd_bcv rate. A non-positive rate
//     yields 0 rather than Inf or NaN, so one bad rate cannot corrupt an
//     entire aggregate.
func ToUSD(v Valuable, rates models.ExchangeRates) float64 {
	switch v.Currency {
	case models.CurrencyUSD:
		return v.Amount
	case models.CurrencyEUR:
		return money.Mul(v.Amount, EurToUSD)
	}

	rate := rates.UsdBCV
	if v.CustomExchangeRate != nil && *v.CustomExchangeRate > 0 {
		rate = *v.CustomExchangeRate
	}
	if rate <= 0 {
		return 0
	}
	return money.Div(v.Amount, rate)
}

// Summary holds the aggregate USD totals derived from the current items,
// physical assets, and rates.
type Summary struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalSavings     float64 `json:"total_savings"`
	LiquidAssets     float64 `json:"liquid_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	MonthlyExpenses  float64 `json:"monthly_expenses"`
	PhysicalValue    float64 `json:"physical_value"`
	NetAssetsValue   float64 `json:"net_assets_value"`
	TotalPatrimony   float64 `json:"total_patrimony"`
}

// Aggregate folds the collections through ToUSD into named totals.
// Savings count toward total assets but are excluded from liquid assets;
// physical value counts toward patrimony but never toward liquidity.
func Aggregate(items []models.FinancialItem, assets []models.PhysicalAsset, rates models.ExchangeRates) Summary {
	var assetVals, savingsVals, liabilityVals, monthlyVals, physicalVals []float64

	for _, i := range items {
		usd := ToUSD(ItemValue(i), rates)
		switch i.Type {
		case models.ItemTypeAsset:
			assetVals = append(assetVals, usd)
			if i.Category == models.CategorySavings {
				savingsVals = append(savingsVals, usd)
			}
		case models.ItemTypeLiability:
			liabilityVals = append(liabilityVals, usd)
			if i.IsMonthly {
				monthlyVals = append(monthlyVals, usd)
			}
		}
	}

	for _, a := range assets {
		physicalVals = append(physicalVals, ToUSD(AssetValue(a), rates))
	}

	s := Summary{
		TotalAssets:      money.Sum(assetVals),
		TotalSavings:     money.Sum(savingsVals),
		TotalLiabilities: money.Sum(liabilityVals),
		MonthlyExpenses:  money.Sum(monthlyVals),
		PhysicalValue:    money.Sum(physicalVals),
	}
	s.LiquidAssets = money.Sub(s.TotalAssets, s.TotalSavings)
	s.NetAssetsValue = money.Sub(s.TotalAssets, s.TotalLiabilities)
	s.TotalPatrimony = money.Add(s.NetAssetsValue, s.PhysicalValue)
	return s
}

// PendingEntry is a debt or receivable still carrying a balance, with its
// USD-equivalent value attached for display.
type PendingEntry struct {
	Item     models.FinancialItem `json:"item"`
	USDValue float64              `json:"usd_value"`
}

// PendingDebts returns liabilities that are one-off (not monthly) and still
// carry a balance.
func PendingDebts(items []models.FinancialItem, rates models.ExchangeRates) []PendingEntry {
	var out []PendingEntry
	for _, i := range items {
		if i.Type == models.ItemTypeLiability && !i.IsMonthly && i.Amount > 0 {
			out = append(out, PendingEntry{Item: i, USDValue: ToUSD(ItemValue(i), rates)})
		}
	}
	return out
}

// PendingReceivables returns receivable assets still carrying a balance.
func PendingReceivables(items []models.FinancialItem, rates models.ExchangeRates) []PendingEntry {
	var out []PendingEntry
	for _, i := range items {
		if i.Type == models.ItemTypeAsset && i.Category == models.CategoryReceivable && i.Amount > 0 {
			out = append(out, PendingEntry{Item: i, USDValue: ToUSD(ItemValue(i), rates)})
		}
	}
	return out
}
