package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/money"
)

// settlementService applies the debt/receivable settlement transition.
type settlementService struct {
	db *gorm.DB
	// autoDeleteSettled removes items settled to exactly zero instead of
	// keeping them as zero-balance records.
	autoDeleteSettled bool
}

// NewSettlementService creates a new SettlementServicer.
func NewSettlementService(db *gorm.DB, autoDeleteSettled bool) SettlementServicer {
	return &settlementService{db: db, autoDeleteSettled: autoDeleteSettled}
}

// Settle partially or fully resolves a debt (paying) or receivable
// (collecting). All validation happens before any mutation; the sub-updates
// then apply inside one database transaction so callers never observe a
// half-applied settlement.
//
// The sign of the cash movement in a money settlement is determined by the
// settled item's type, not by the method: paying a debt drains the
// counter-party account, collecting a receivable credits it.
func (s *settlementService) Settle(itemID string, amount float64, method SettlementMethod, details SettlementDetails) (*SettlementResult, error) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return nil, apperrors.ErrInvalidSettlementAmount
	}

	item, err := s.getItem(itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsSettleable() {
		return nil, apperrors.ErrItemNotSettleable
	}

	// Resolve method-specific references up front, before mutating anything.
	var counterparty *models.FinancialItem
	var outgoingAsset *models.PhysicalAsset

	switch method {
	case SettlementMoney:
		if details.AccountID == "" {
			return nil, apperrors.ErrCounterpartyRequired
		}
		counterparty, err = s.getItem(details.AccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrItemNotFound) {
				return nil, apperrors.ErrCounterpartyRequired
			}
			return nil, err
		}
		if !counterparty.IsLiquidAccount() {
			return nil, apperrors.ErrCounterpartyNotLiquid
		}
	case SettlementAssetOut:
		if details.AssetID == "" {
			return nil, apperrors.ErrSettlementAssetRequired
		}
		var asset models.PhysicalAsset
		if err := s.db.Where("id = ?", details.AssetID).First(&asset).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrAssetNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		outgoingAsset = &asset
	case SettlementAssetIn:
		// Nothing to resolve; the received asset is created below.
	default:
		return nil, apperrors.ErrInvalidSettlementMethod
	}

	isDebt := item.Type == models.ItemTypeLiability

	result := &SettlementResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Clamp: over-settling leaves the item at zero, never negative.
		newAmount := money.Sub(item.Amount, amount)
		if newAmount < 0 {
			newAmount = 0
		}
		item.Amount = newAmount
		if details.Note != "" {
			// The note records the last settlement, overwriting, not appending.
			item.Note = details.Note
		}
		if err := tx.Model(item).Updates(map[string]interface{}{
			"amount": item.Amount,
			"note":   item.Note,
		}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		switch method {
		case SettlementMoney:
			if isDebt {
				counterparty.Amount = money.Sub(counterparty.Amount, amount)
			} else {
				counterparty.Amount = money.Add(counterparty.Amount, amount)
			}
			if err := tx.Model(counterparty).Update("amount", counterparty.Amount).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result.UpdatedCounterparty = counterparty

		case SettlementAssetOut:
			// No partial-value splitting: the asset is surrendered whole.
			if err := tx.Delete(outgoingAsset).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result.RemovedAssetID = outgoingAsset.ID

		case SettlementAssetIn:
			name := details.NewAssetName
			if name == "" {
				name = "Nuevo Activo"
			}
			description := details.NewAssetDescription
			if description == "" {
				description = "Recibido por pago de deuda"
			}
			received := &models.PhysicalAsset{
				Name:           name,
				EstimatedValue: amount,
				Currency:       item.Currency,
				Description:    description,
			}
			if err := tx.Create(received).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result.CreatedAsset = received
		}

		if item.Amount == 0 && s.autoDeleteSettled {
			if err := tx.Delete(item).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			result.ItemDeleted = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	result.UpdatedItem = item
	return result, nil
}

func (s *settlementService) getItem(itemID string) (*models.FinancialItem, error) {
	var item models.FinancialItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}
