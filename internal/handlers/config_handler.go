package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
)

// ConfigHandler handles the country/currency option lists.
type ConfigHandler struct {
	configService services.ConfigServicer
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configService services.ConfigServicer) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// OptionRequest represents the request payload for adding or removing an
// option.
type OptionRequest struct {
	Type  string `json:"type" binding:"required,option_type"`
	Value string `json:"value" binding:"required,max=100"`
}

// GetOptions returns the country and currency pick lists.
func (h *ConfigHandler) GetOptions(c *gin.Context) {
	options, err := h.configService.GetOptions()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// AddOption adds a value to a pick list. Duplicates return 409.
func (h *ConfigHandler) AddOption(c *gin.Context) {
	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.configService.AddOption(req.Type, req.Value); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Option added successfully"})
}

// RemoveOption removes a value from a pick list. Removing a missing value is
// a no-op.
func (h *ConfigHandler) RemoveOption(c *gin.Context) {
	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.configService.RemoveOption(req.Type, req.Value); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Option removed successfully"})
}
