package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
	"assetsnapshot/internal/services"
)

// AssetHandler handles asset and asset log requests.
type AssetHandler struct {
	assetService services.AssetServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAssetRequest represents the request payload for creating an asset.
type CreateAssetRequest struct {
	OwnerID       uint    `json:"owner_id" binding:"required"`
	Name          string  `json:"name" binding:"required,max=100"`
	AssetType     string  `json:"asset_type" binding:"max=50"`
	Value         float64 `json:"value"`
	Currency      string  `json:"currency" binding:"omitempty,iso4217"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseDate  string  `json:"purchase_date"`
	Country       string  `json:"country" binding:"max=100"`
	Notes         string  `json:"notes" binding:"max=1000"`
	LogoColor     string  `json:"logo_color" binding:"omitempty,hex_color"`
}

// UpdateAssetRequest represents the partial-patch payload for an asset.
type UpdateAssetRequest struct {
	OwnerID       *uint    `json:"owner_id"`
	Name          *string  `json:"name" binding:"omitempty,max=100"`
	AssetType     *string  `json:"asset_type" binding:"omitempty,max=50"`
	Value         *float64 `json:"value"`
	Currency      *string  `json:"currency" binding:"omitempty,iso4217"`
	PurchasePrice *float64 `json:"purchase_price"`
	PurchaseDate  *string  `json:"purchase_date"`
	Country       *string  `json:"country" binding:"omitempty,max=100"`
	Notes         *string  `json:"notes" binding:"omitempty,max=1000"`
	LogoColor     *string  `json:"logo_color" binding:"omitempty,hex_color"`
}

// CreateAssetLogRequest represents the request payload for creating an asset
// log.
type CreateAssetLogRequest struct {
	AssetID    uint    `json:"asset_id" binding:"required"`
	Type       string  `json:"type" binding:"omitempty,asset_log_type"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency" binding:"omitempty,iso4217"`
	Comment    string  `json:"comment" binding:"max=500"`
	RecordedAt string  `json:"recorded_at" binding:"required"`
}

// UpdateAssetLogRequest represents the partial-patch payload for an asset log.
type UpdateAssetLogRequest struct {
	Type       *string  `json:"type" binding:"omitempty,asset_log_type"`
	Amount     *float64 `json:"amount"`
	Currency   *string  `json:"currency" binding:"omitempty,iso4217"`
	Comment    *string  `json:"comment" binding:"omitempty,max=500"`
	RecordedAt *string  `json:"recorded_at"`
}

// ListAssets returns all assets with owner names.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	assets, err := h.assetService.ListAssets()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// GetAsset returns one asset with its logs.
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAsset(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// CreateAsset creates an asset.
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != "" {
		parsed, parseErr := parseFlexibleTime(req.PurchaseDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		purchaseDate = &parsed
	}

	asset, err := h.assetService.CreateAsset(services.AssetCreateFields{
		OwnerID:       req.OwnerID,
		Name:          req.Name,
		AssetType:     req.AssetType,
		Value:         req.Value,
		Currency:      req.Currency,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  purchaseDate,
		Country:       req.Country,
		Notes:         req.Notes,
		LogoColor:     req.LogoColor,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// UpdateAsset applies a partial patch to an asset.
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != nil && *req.PurchaseDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.PurchaseDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		purchaseDate = &parsed
	}

	asset, err := h.assetService.UpdateAsset(id, services.AssetUpdateFields{
		OwnerID:       req.OwnerID,
		Name:          req.Name,
		AssetType:     req.AssetType,
		Value:         req.Value,
		Currency:      req.Currency,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  purchaseDate,
		Country:       req.Country,
		Notes:         req.Notes,
		LogoColor:     req.LogoColor,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset deletes an asset and its logs.
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// CreateAssetLog records a dated entry against an asset.
func (h *AssetHandler) CreateAssetLog(c *gin.Context) {
	var req CreateAssetLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recordedAt, err := parseFlexibleTime(req.RecordedAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	log, err := h.assetService.CreateAssetLog(services.AssetLogCreateFields{
		AssetID:    req.AssetID,
		Type:       models.AssetLogType(req.Type),
		Amount:     req.Amount,
		Currency:   req.Currency,
		Comment:    req.Comment,
		RecordedAt: recordedAt,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"log": log})
}

// UpdateAssetLog applies a partial patch to an asset log.
func (h *AssetHandler) UpdateAssetLog(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var recordedAt *time.Time
	if req.RecordedAt != nil && *req.RecordedAt != "" {
		parsed, parseErr := parseFlexibleTime(*req.RecordedAt)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		recordedAt = &parsed
	}

	var logType *models.AssetLogType
	if req.Type != nil {
		t := models.AssetLogType(*req.Type)
		logType = &t
	}

	log, err := h.assetService.UpdateAssetLog(id, services.AssetLogUpdateFields{
		Type:       logType,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Comment:    req.Comment,
		RecordedAt: recordedAt,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": log})
}

// DeleteAssetLog removes an asset log.
func (h *AssetHandler) DeleteAssetLog(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAssetLog(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset log deleted successfully"})
}
