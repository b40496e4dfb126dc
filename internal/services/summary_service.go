package services

import (
	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/valuation"
)

// summaryService computes aggregate valuation metrics. It holds no state of
// its own: every call loads the current items, assets, and rates and folds
// them through the pure valuation functions, so a rate edit is reflected in
// the very next read.
type summaryService struct {
	db    *gorm.DB
	rates RatesServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB, rates RatesServicer) SummaryServicer {
	return &summaryService{db: db, rates: rates}
}

// GetSummary computes net-worth, liquidity, debt, and monthly-burn totals
// from the current store state.
func (s *summaryService) GetSummary() (*valuation.Summary, error) {
	items, assets, err := s.load()
	if err != nil {
		return nil, err
	}

	summary := valuation.Aggregate(items, assets, s.rates.Current())
	return &summary, nil
}

// GetPending returns outstanding one-off debts and receivables with their
// USD-equivalent values.
func (s *summaryService) GetPending() (*PendingSummary, error) {
	items, _, err := s.load()
	if err != nil {
		return nil, err
	}

	rates := s.rates.Current()
	return &PendingSummary{
		Debts:       valuation.PendingDebts(items, rates),
		Receivables: valuation.PendingReceivables(items, rates),
	}, nil
}

func (s *summaryService) load() ([]models.FinancialItem, []models.PhysicalAsset, error) {
	var items []models.FinancialItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.PhysicalAsset
	if err := s.db.Find(&assets).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return items, assets, nil
}
