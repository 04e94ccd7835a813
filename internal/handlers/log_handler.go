package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
)

// LogHandler handles balance log requests.
type LogHandler struct {
	logService services.LogServicer
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService services.LogServicer) *LogHandler {
	return &LogHandler{logService: logService}
}

// CreateLogRequest represents the request payload for creating a balance log.
type CreateLogRequest struct {
	AccountID  uint    `json:"account_id" binding:"required"`
	Balance    float64 `json:"balance"`
	Currency   string  `json:"currency" binding:"omitempty,iso4217"`
	Comment    string  `json:"comment" binding:"max=500"`
	RecordedAt string  `json:"recorded_at" binding:"required"`
}

// UpdateLogRequest represents the partial-patch payload for a balance log.
type UpdateLogRequest struct {
	Balance    *float64 `json:"balance"`
	Currency   *string  `json:"currency" binding:"omitempty,iso4217"`
	Comment    *string  `json:"comment" binding:"omitempty,max=500"`
	RecordedAt *string  `json:"recorded_at"`
}

// CreateLog records a balance snapshot and restamps the parent bank.
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recordedAt, err := parseFlexibleTime(req.RecordedAt)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	log, err := h.logService.CreateLog(services.LogCreateFields{
		AccountID:  req.AccountID,
		Balance:    req.Balance,
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

// UpdateLog applies a partial patch to a balance log.
func (h *LogHandler) UpdateLog(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLogRequest
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

	log, err := h.logService.UpdateLog(id, services.LogUpdateFields{
		Balance:    req.Balance,
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

// DeleteLog removes a balance log and restamps the parent bank.
func (h *LogHandler) DeleteLog(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.logService.DeleteLog(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Log deleted successfully"})
}
