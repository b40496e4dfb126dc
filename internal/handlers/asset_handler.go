package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// AssetHandler handles physical asset requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating a physical asset.
type CreateAssetRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	EstimatedValue float64 `json:"estimated_value" binding:"gte=0"`
	Currency       string  `json:"currency" binding:"omitempty,currency"`
	Description    string  `json:"description" binding:"max=500"`
}

// UpdateAssetRequest represents the request payload for updating a physical asset.
type UpdateAssetRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	EstimatedValue *float64 `json:"estimated_value" binding:"omitempty,gte=0"`
	Currency       *string  `json:"currency" binding:"omitempty,currency"`
	Description    *string  `json:"description" binding:"omitempty,max=500"`
}

// LiquidateAssetRequest represents the request payload for liquidating a physical asset.
type LiquidateAssetRequest struct {
	SalePrice       float64 `json:"sale_price" binding:"required,gt=0"`
	TargetAccountID string  `json:"target_account_id" binding:"required,uuid"`
}

// CreateAsset handles the creation of a new physical asset.
// @Summary     Create a physical asset
// @Description Register a physical possession with an estimated value
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.PhysicalAsset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	currency := models.CurrencyUSD
	if req.Currency != "" {
		currency = models.Currency(req.Currency)
	}

	asset, err := h.assetService.CreateAsset(services.AssetInput{
		Name:           req.Name,
		EstimatedValue: req.EstimatedValue,
		Currency:       currency,
		Description:    req.Description,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets handles listing physical assets with pagination.
// @Summary     List physical assets
// @Description List all registered physical assets
// @Tags        assets
// @Produce     json
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Success     200 {object} pagination.PageResponse[models.PhysicalAsset] "Assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var pageReq pagination.PageRequest
	if err := c.ShouldBindQuery(&pageReq); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	page, err := h.assetService.GetAssets(pageReq)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetAsset handles retrieving a single physical asset.
// @Summary     Get a physical asset
// @Description Get a single physical asset by its ID
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.PhysicalAsset "Asset"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetAssetByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles updating a physical asset.
// @Summary     Update a physical asset
// @Description Update one or more fields of an existing physical asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id path string true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} models.PhysicalAsset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.AssetUpdateFields{
		Name:           req.Name,
		EstimatedValue: req.EstimatedValue,
		Description:    req.Description,
	}
	if req.Currency != nil {
		currency := models.Currency(*req.Currency)
		fields.Currency = &currency
	}

	asset, err := h.assetService.UpdateAsset(c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting a physical asset.
// @Summary     Delete a physical asset
// @Description Permanently remove a physical asset
// @Tags        assets
// @Produce     json
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.DeleteAsset(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// LiquidateAsset handles converting a physical asset into cash.
// @Summary     Liquidate a physical asset
// @Description Sell a physical asset: credit the sale price to a liquid account and remove the asset, atomically
// @Tags        assets
// @Accept      json
// @Produce     json
// @Param       id path string true "Asset ID"
// @Param       request body LiquidateAssetRequest true "Sale details"
// @Success     200 {object} services.LiquidationResult "Liquidation applied"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id}/liquidate [post]
func (h *AssetHandler) LiquidateAsset(c *gin.Context) {
	var req LiquidateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assetService.Liquidate(c.Param("id"), req.SalePrice, req.TargetAccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
