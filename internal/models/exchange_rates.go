package models

import "time"

// ExchangeRates is the process-wide valuation context, stored as a single
// row and re-read on every conversion. UsdBCV is the only rate the
// conversion policy consumes; the Binance and EUR rates are published for
// display.
type ExchangeRates struct {
	Base
	UsdBCV         float64   `gorm:"column:usd_bcv;not null;default:0" json:"usd_bcv"`
	EurBCV         float64   `gorm:"column:eur_bcv;not null;default:0" json:"eur_bcv"`
	UsdBinanceBuy  float64   `gorm:"column:usd_binance_buy;not null;default:0" json:"usd_binance_buy"`
	UsdBinanceSell float64   `gorm:"column:usd_binance_sell;not null;default:0" json:"usd_binance_sell"`
	LastUpdated    time.Time `json:"last_updated"`
}

// TableName keeps the singular-context table name used by the rates feed.
func (ExchangeRates) TableName() string {
	return "exchange_rates"
}
