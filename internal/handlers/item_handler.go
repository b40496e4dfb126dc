package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// ItemHandler handles financial item requests.
type ItemHandler struct {
	itemService       services.ItemServicer
	settlementService services.SettlementServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer, settlementService services.SettlementServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService, settlementService: settlementService}
}

// CreateItemRequest represents the request payload for creating a financial item.
type CreateItemRequest struct {
	Name               string   `json:"name" binding:"required,min=1,max=100"`
	Amount             float64  `json:"amount" binding:"gte=0"`
	Currency           string   `json:"currency" binding:"omitempty,currency"`
	Category           string   `json:"category" binding:"required,item_category"`
	Type               string   `json:"type" binding:"required,item_type"`
	IsMonthly          bool     `json:"is_monthly"`
	DayOfMonth         *int     `json:"day_of_month" binding:"omitempty,day_of_month"`
	Note               string   `json:"note" binding:"max=500"`
	CustomExchangeRate *float64 `json:"custom_exchange_rate" binding:"omitempty,gt=0"`
}

// ImportItemsRequest represents the request payload for bulk item import.
type ImportItemsRequest struct {
	Items []CreateItemRequest `json:"items" binding:"required,min=1,max=500,dive"`
}

// UpdateItemRequest represents the request payload for updating a financial item.
// The clear flags null the corresponding optional field, reverting VES items
// to the global usd_bcv rate or removing the monthly anchor.
type UpdateItemRequest struct {
	Name               *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Amount             *float64 `json:"amount" binding:"omitempty,gte=0"`
	Currency           *string  `json:"currency" binding:"omitempty,currency"`
	Category           *string  `json:"category" binding:"omitempty,item_category"`
	Type               *string  `json:"type" binding:"omitempty,item_type"`
	IsMonthly          *bool    `json:"is_monthly"`
	DayOfMonth         *int     `json:"day_of_month" binding:"omitempty,day_of_month"`
	Note               *string  `json:"note" binding:"omitempty,max=500"`
	CustomExchangeRate *float64 `json:"custom_exchange_rate" binding:"omitempty,gt=0"`

	ClearDayOfMonth         bool `json:"clear_day_of_month"`
	ClearCustomExchangeRate bool `json:"clear_custom_exchange_rate"`
}

// SettleItemRequest represents the request payload for settling a debt or receivable.
type SettleItemRequest struct {
	Amount              float64 `json:"amount" binding:"required,gt=0"`
	Method              string  `json:"method" binding:"required,settlement_method"`
	AccountID           string  `json:"account_id" binding:"omitempty,uuid"`
	AssetID             string  `json:"asset_id" binding:"omitempty,uuid"`
	NewAssetName        string  `json:"new_asset_name" binding:"max=100"`
	NewAssetDescription string  `json:"new_asset_description" binding:"max=500"`
	Note                string  `json:"note" binding:"max=500"`
}

// ListItemsQuery represents the query parameters for listing financial items.
type ListItemsQuery struct {
	pagination.PageRequest
	Category string `form:"category" binding:"omitempty,item_category"`
	Type     string `form:"type" binding:"omitempty,item_type"`
	Currency string `form:"currency" binding:"omitempty,currency"`
}

func (r *CreateItemRequest) toInput() services.ItemInput {
	currency := models.CurrencyUSD
	if r.Currency != "" {
		currency = models.Currency(r.Currency)
	}
	return services.ItemInput{
		Name:               r.Name,
		Amount:             r.Amount,
		Currency:           currency,
		Category:           models.ItemCategory(r.Category),
		Type:               models.ItemType(r.Type),
		IsMonthly:          r.IsMonthly,
		DayOfMonth:         r.DayOfMonth,
		Note:               r.Note,
		CustomExchangeRate: r.CustomExchangeRate,
	}
}

// CreateItem handles the creation of a new financial item.
// @Summary     Create a financial item
// @Description Create a new asset or liability entry in the ledger
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} models.FinancialItem "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// ImportItems handles bulk creation of financial items in a single transaction.
// @Summary     Import financial items
// @Description Create a batch of items atomically; either all are created or none
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       request body ImportItemsRequest true "Items to import"
// @Success     201 {object} map[string]interface{} "Items created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/bulk [post]
func (h *ItemHandler) ImportItems(c *gin.Context) {
	var req ImportItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	inputs := make([]services.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, item.toInput())
	}

	items, err := h.itemService.ImportItems(inputs)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"items": items, "count": len(items)})
}

// ListItems handles listing financial items with filters and pagination.
// @Summary     List financial items
// @Description List items, optionally filtered by category, type, or currency
// @Tags        items
// @Produce     json
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Param       category query string false "Filter by category"
// @Param       type query string false "Filter by type (asset or liability)"
// @Param       currency query string false "Filter by currency"
// @Success     200 {object} pagination.PageResponse[models.FinancialItem] "Items"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	var query ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ItemFilter{}
	if query.Category != "" {
		category := models.ItemCategory(query.Category)
		filter.Category = &category
	}
	if query.Type != "" {
		itemType := models.ItemType(query.Type)
		filter.Type = &itemType
	}
	if query.Currency != "" {
		currency := models.Currency(query.Currency)
		filter.Currency = &currency
	}

	page, err := h.itemService.GetItems(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetItem handles retrieving a single financial item.
// @Summary     Get a financial item
// @Description Get a single item by its ID
// @Tags        items
// @Produce     json
// @Param       id path string true "Item ID"
// @Success     200 {object} models.FinancialItem "Item"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.itemService.GetItemByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// UpdateItem handles updating a financial item.
// @Summary     Update a financial item
// @Description Update one or more fields of an existing item
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       id path string true "Item ID"
// @Param       request body UpdateItemRequest true "Fields to update"
// @Success     200 {object} models.FinancialItem "Updated item"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ItemUpdateFields{
		Name:                    req.Name,
		Amount:                  req.Amount,
		IsMonthly:               req.IsMonthly,
		DayOfMonth:              req.DayOfMonth,
		Note:                    req.Note,
		CustomExchangeRate:      req.CustomExchangeRate,
		ClearDayOfMonth:         req.ClearDayOfMonth,
		ClearCustomExchangeRate: req.ClearCustomExchangeRate,
	}
	if req.Currency != nil {
		currency := models.Currency(*req.Currency)
		fields.Currency = &currency
	}
	if req.Category != nil {
		category := models.ItemCategory(*req.Category)
		fields.Category = &category
	}
	if req.Type != nil {
		itemType := models.ItemType(*req.Type)
		fields.Type = &itemType
	}

	item, err := h.itemService.UpdateItem(c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles deleting a financial item.
// @Summary     Delete a financial item
// @Description Permanently remove an item from the ledger
// @Tags        items
// @Produce     json
// @Param       id path string true "Item ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// SettleItem handles settling a debt or receivable.
// @Summary     Settle a debt or receivable
// @Description Apply a partial or full settlement to a debt or receivable, moving money or a physical asset in the same transaction
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       id path string true "Item ID"
// @Param       request body SettleItemRequest true "Settlement details"
// @Success     200 {object} services.SettlementResult "Settlement applied"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id}/settle [post]
func (h *ItemHandler) SettleItem(c *gin.Context) {
	var req SettleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.settlementService.Settle(
		c.Param("id"),
		req.Amount,
		services.SettlementMethod(req.Method),
		services.SettlementDetails{
			AccountID:           req.AccountID,
			AssetID:             req.AssetID,
			NewAssetName:        req.NewAssetName,
			NewAssetDescription: req.NewAssetDescription,
			Note:                req.Note,
		},
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
