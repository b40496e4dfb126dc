package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/money"
	"patrimonio/internal/pagination"
)

// assetService handles physical asset business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset creates a new physical asset.
func (s *assetService) CreateAsset(input AssetInput) (*models.PhysicalAsset, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}
	if input.EstimatedValue < 0 || math.IsInf(input.EstimatedValue, 0) || math.IsNaN(input.EstimatedValue) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "estimated value must be a non-negative finite number")
	}
	if input.Currency == "" {
		input.Currency = models.CurrencyUSD
	}

	asset := &models.PhysicalAsset{
		Name:           input.Name,
		EstimatedValue: input.EstimatedValue,
		Currency:       input.Currency,
		Description:    input.Description,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return asset, nil
}

// GetAssets retrieves a paginated list of physical assets.
func (s *assetService) GetAssets(page pagination.PageRequest) (*pagination.PageResponse[models.PhysicalAsset], error) {
	page.Defaults()

	base := s.db.Model(&models.PhysicalAsset{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.PhysicalAsset
	if err := base.Scopes(pagination.Paginate(page), pagination.RecentFirst).
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAssetByID retrieves a physical asset by ID.
func (s *assetService) GetAssetByID(assetID string) (*models.PhysicalAsset, error) {
	var asset models.PhysicalAsset
	if err := s.db.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset updates an existing physical asset. Only non-nil fields are applied.
func (s *assetService) UpdateAsset(assetID string, fields AssetUpdateFields) (*models.PhysicalAsset, error) {
	asset, err := s.GetAssetByID(assetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.EstimatedValue != nil {
		if *fields.EstimatedValue < 0 || math.IsInf(*fields.EstimatedValue, 0) || math.IsNaN(*fields.EstimatedValue) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "estimated value must be a non-negative finite number")
		}
		updates["estimated_value"] = *fields.EstimatedValue
	}
	if fields.Currency != nil {
		updates["currency"] = *fields.Currency
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(asset).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", asset.ID).First(asset).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return asset, nil
}

// DeleteAsset soft-deletes a physical asset.
func (s *assetService) DeleteAsset(assetID string) error {
	asset, err := s.GetAssetByID(assetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Liquidate converts a physical asset into liquid currency: the target
// account is credited with the sale price in the account's own currency (no
// conversion; the caller picks a matching account) and the asset leaves the
// inventory. Both changes apply in one database transaction or not at all.
// The sale price may differ from the asset's estimated value.
func (s *assetService) Liquidate(assetID string, salePrice float64, targetAccountID string) (*LiquidationResult, error) {
	if salePrice <= 0 || math.IsInf(salePrice, 0) || math.IsNaN(salePrice) {
		return nil, apperrors.ErrInvalidSalePrice
	}

	asset, err := s.GetAssetByID(assetID)
	if err != nil {
		return nil, err
	}

	if targetAccountID == "" {
		return nil, apperrors.ErrTargetAccountInvalid
	}
	var account models.FinancialItem
	if err := s.db.Where("id = ?", targetAccountID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTargetAccountInvalid
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !account.IsLiquidAccount() {
		return nil, apperrors.ErrTargetAccountInvalid
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		account.Amount = money.Add(account.Amount, salePrice)
		if err := tx.Model(&account).Update("amount", account.Amount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &LiquidationResult{
		UpdatedAccount: &account,
		RemovedAssetID: asset.ID,
		SalePrice:      salePrice,
	}, nil
}
