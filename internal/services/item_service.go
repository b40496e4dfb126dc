package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
)

// itemService handles financial item business logic.
type itemService struct {
	db *gorm.DB
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB) ItemServicer {
	return &itemService{db: db}
}

func validateItemInput(input ItemInput) error {
	if input.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "item name is required")
	}
	if input.Amount < 0 || math.IsInf(input.Amount, 0) || math.IsNaN(input.Amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative finite number")
	}
	if input.CustomExchangeRate != nil && *input.CustomExchangeRate <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "custom exchange rate must be positive")
	}
	if input.DayOfMonth != nil && (*input.DayOfMonth < 1 || *input.DayOfMonth > 31) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month must be between 1 and 31")
	}
	return nil
}

func newItemFromInput(input ItemInput) *models.FinancialItem {
	if input.Currency == "" {
		input.Currency = models.CurrencyUSD
	}
	return &models.FinancialItem{
		Name:               input.Name,
		Amount:             input.Amount,
		Currency:           input.Currency,
		Category:           input.Category,
		Type:               input.Type,
		IsMonthly:          input.IsMonthly,
		DayOfMonth:         input.DayOfMonth,
		Note:               input.Note,
		CustomExchangeRate: input.CustomExchangeRate,
	}
}

// CreateItem creates a new financial item.
func (s *itemService) CreateItem(input ItemInput) (*models.FinancialItem, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := newItemFromInput(input)
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return item, nil
}

// ImportItems inserts a batch of items in a single transaction, so a bulk
// import either lands completely or not at all.
func (s *itemService) ImportItems(inputs []ItemInput) ([]models.FinancialItem, error) {
	if len(inputs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no items to import")
	}

	items := make([]models.FinancialItem, 0, len(inputs))
	for _, input := range inputs {
		if err := validateItemInput(input); err != nil {
			return nil, err
		}
		items = append(items, *newItemFromInput(input))
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&items).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// GetItems retrieves a paginated, filtered list of financial items.
func (s *itemService) GetItems(page pagination.PageRequest, filter ItemFilter) (*pagination.PageResponse[models.FinancialItem], error) {
	page.Defaults()

	base := s.db.Model(&models.FinancialItem{})
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Currency != nil {
		base = base.Where("currency = ?", *filter.Currency)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.FinancialItem
	if err := base.Scopes(pagination.Paginate(page), pagination.RecentFirst).
		Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetItemByID retrieves a financial item by ID.
func (s *itemService) GetItemByID(itemID string) (*models.FinancialItem, error) {
	var item models.FinancialItem
	if err := s.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem updates an existing financial item. Only non-nil fields are applied.
func (s *itemService) UpdateItem(itemID string, fields ItemUpdateFields) (*models.FinancialItem, error) {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Amount != nil {
		if *fields.Amount < 0 || math.IsInf(*fields.Amount, 0) || math.IsNaN(*fields.Amount) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative finite number")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Currency != nil {
		updates["currency"] = *fields.Currency
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.IsMonthly != nil {
		updates["is_monthly"] = *fields.IsMonthly
	}
	if fields.ClearDayOfMonth {
		if fields.DayOfMonth != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot both set and clear day of month")
		}
		updates["day_of_month"] = nil
	} else if fields.DayOfMonth != nil {
		if *fields.DayOfMonth < 1 || *fields.DayOfMonth > 31 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month must be between 1 and 31")
		}
		updates["day_of_month"] = *fields.DayOfMonth
	}
	if fields.Note != nil {
		updates["note"] = *fields.Note
	}
	// Clearing the override reverts the item to the global usd_bcv rate.
	if fields.ClearCustomExchangeRate {
		if fields.CustomExchangeRate != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot both set and clear custom exchange rate")
		}
		updates["custom_exchange_rate"] = nil
	} else if fields.CustomExchangeRate != nil {
		if *fields.CustomExchangeRate <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "custom exchange rate must be positive")
		}
		updates["custom_exchange_rate"] = *fields.CustomExchangeRate
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Reload to get fresh data
		if err := s.db.Where("id = ?", item.ID).First(item).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return item, nil
}

// DeleteItem soft-deletes a financial item. Zero-balance settled items are
// also removed through this path, never implicitly.
func (s *itemService) DeleteItem(itemID string) error {
	item, err := s.GetItemByID(itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
