package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"patrimonio/internal/services"
)

// SummaryHandler handles aggregate valuation requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary handles computing the aggregate portfolio summary.
// @Summary     Get portfolio summary
// @Description Compute all aggregate USD totals from the current ledger, assets, and rates
// @Tags        summary
// @Produce     json
// @Success     200 {object} valuation.Summary "Summary"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetPending handles listing outstanding debts and receivables.
// @Summary     Get pending settlements
// @Description List the debts and receivables with a remaining balance, valued in USD
// @Tags        summary
// @Produce     json
// @Success     200 {object} services.PendingSummary "Pending debts and receivables"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary/pending [get]
func (h *SummaryHandler) GetPending(c *gin.Context) {
	pending, err := h.summaryService.GetPending()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pending)
}
