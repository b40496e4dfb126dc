package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/services"
)

// RatesHandler handles exchange rate requests.
type RatesHandler struct {
	ratesService services.RatesServicer
}

// NewRatesHandler creates a new RatesHandler.
func NewRatesHandler(ratesService services.RatesServicer) *RatesHandler {
	return &RatesHandler{ratesService: ratesService}
}

// UpdateRatesRequest represents the request payload for manually setting exchange rates.
type UpdateRatesRequest struct {
	UsdBCV         float64 `json:"usd_bcv" binding:"gte=0"`
	EurBCV         float64 `json:"eur_bcv" binding:"gte=0"`
	UsdBinanceBuy  float64 `json:"usd_binance_buy" binding:"gte=0"`
	UsdBinanceSell float64 `json:"usd_binance_sell" binding:"gte=0"`
}

// GetRates handles retrieving the current exchange rates.
// @Summary     Get exchange rates
// @Description Get the stored VES exchange rates used for valuation
// @Tags        rates
// @Produce     json
// @Success     200 {object} models.ExchangeRates "Rates"
// @Failure     404 {object} ErrorResponse "Rates not initialized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates [get]
func (h *RatesHandler) GetRates(c *gin.Context) {
	rates, err := h.ratesService.GetRates()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// UpdateRates handles manually setting the exchange rates.
// @Summary     Update exchange rates
// @Description Manually set the VES exchange rates used for valuation
// @Tags        rates
// @Accept      json
// @Produce     json
// @Param       request body UpdateRatesRequest true "New rates"
// @Success     200 {object} models.ExchangeRates "Updated rates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates [put]
func (h *RatesHandler) UpdateRates(c *gin.Context) {
	var req UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rates, err := h.ratesService.UpdateRates(req.UsdBCV, req.EurBCV, req.UsdBinanceBuy, req.UsdBinanceSell)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// RefreshRates handles fetching fresh rates from the upstream feed.
// @Summary     Refresh exchange rates
// @Description Fetch the latest rates from the configured upstream feed and store them
// @Tags        rates
// @Produce     json
// @Success     200 {object} models.ExchangeRates "Refreshed rates"
// @Failure     502 {object} ErrorResponse "Upstream feed unavailable"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rates/refresh [post]
func (h *RatesHandler) RefreshRates(c *gin.Context) {
	rates, err := h.ratesService.Refresh(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": rates})
}
