package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/logger"
	"patrimonio/internal/models"
)

// ratesService manages the single exchange rates row. Rates can be edited
// manually or refreshed from an upstream feed; either path immediately
// changes all derived totals, since valuation reads rates fresh per call.
type ratesService struct {
	db     *gorm.DB
	source RateSource
}

// NewRatesService creates a new RatesServicer. The source may be nil when
// no upstream feed is configured; Refresh then fails with RATES_FEED_FAILED.
func NewRatesService(db *gorm.DB, source RateSource) RatesServicer {
	return &ratesService{db: db, source: source}
}

// GetRates returns the stored exchange rates.
func (s *ratesService) GetRates() (*models.ExchangeRates, error) {
	var rates models.ExchangeRates
	if err := s.db.Order("created_at DESC").First(&rates).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRatesNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rates, nil
}

// Current returns the stored rates, or a zero-valued rates context when none
// exist yet. VES conversions then degrade to 0 instead of failing.
func (s *ratesService) Current() models.ExchangeRates {
	rates, err := s.GetRates()
	if err != nil {
		return models.ExchangeRates{}
	}
	return *rates
}

// upsert writes the single rates row with the given values and timestamp.
func (s *ratesService) upsert(usdBCV, eurBCV, binanceBuy, binanceSell float64, updatedAt time.Time) (*models.ExchangeRates, error) {
	if usdBCV < 0 || eurBCV < 0 || binanceBuy < 0 || binanceSell < 0 {
		return nil, apperrors.ErrInvalidRate
	}

	rates, err := s.GetRates()
	if err != nil {
		if !errors.Is(err, apperrors.ErrRatesNotFound) {
			return nil, err
		}
		rates = &models.ExchangeRates{}
	}

	rates.UsdBCV = usdBCV
	rates.EurBCV = eurBCV
	rates.UsdBinanceBuy = binanceBuy
	rates.UsdBinanceSell = binanceSell
	rates.LastUpdated = updatedAt

	if err := s.db.Save(rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rates, nil
}

// UpdateRates upserts the rates row from manually supplied values.
func (s *ratesService) UpdateRates(usdBCV, eurBCV, binanceBuy, binanceSell float64) (*models.ExchangeRates, error) {
	return s.upsert(usdBCV, eurBCV, binanceBuy, binanceSell, time.Now())
}

// Refresh pulls current rates from the upstream feed and stores them in a
// single write, keeping the feed's own timestamp when it supplies one.
func (s *ratesService) Refresh(ctx context.Context) (*models.ExchangeRates, error) {
	if s.source == nil {
		return nil, apperrors.WithMessage(apperrors.ErrRatesFeedFailed, "no rates feed configured")
	}

	fetched, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRatesFeedFailed, err)
	}

	updatedAt := fetched.Timestamp
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	rates, err := s.upsert(fetched.UsdBCV, fetched.EurBCV, fetched.UsdBinanceBuy, fetched.UsdBinanceSell, updatedAt)
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("exchange rates refreshed",
		"usd_bcv", rates.UsdBCV,
		"eur_bcv", rates.EurBCV,
		"last_updated", rates.LastUpdated,
	)
	return rates, nil
}
