package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
)

// FXRateHandler handles exchange rate requests.
type FXRateHandler struct {
	fxRateService services.FXRateServicer
}

// NewFXRateHandler creates a new FXRateHandler.
func NewFXRateHandler(fxRateService services.FXRateServicer) *FXRateHandler {
	return &FXRateHandler{fxRateService: fxRateService}
}

// UpsertRatesRequest represents the request payload for a bulk rate upsert.
type UpsertRatesRequest struct {
	Rates []RateEntry `json:"rates" binding:"required,min=1,dive"`
}

// RateEntry is one base→target quote.
type RateEntry struct {
	Base   string  `json:"base" binding:"required,iso4217"`
	Target string  `json:"target" binding:"required,iso4217"`
	Rate   float64 `json:"rate" binding:"required,gt=0"`
}

// ListRates returns all stored exchange rates.
func (h *FXRateHandler) ListRates(c *gin.Context) {
	rates, err := h.fxRateService.ListRates()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rates": rates})
}

// UpsertRates upserts a batch of rates in one transaction.
func (h *FXRateHandler) UpsertRates(c *gin.Context) {
	var req UpsertRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := make([]services.RateUpdate, len(req.Rates))
	for i, r := range req.Rates {
		updates[i] = services.RateUpdate{Base: r.Base, Target: r.Target, Rate: r.Rate}
	}
	if err := h.fxRateService.UpsertRates(updates); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rates updated successfully"})
}

// RefreshRates fetches live USD-anchored rates and upserts the ones matching
// configured currencies.
func (h *FXRateHandler) RefreshRates(c *gin.Context) {
	count, err := h.fxRateService.RefreshRates(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": count})
}
