package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
)

// BankHandler handles bank-related requests. The routes live under
// /api/accounts for compatibility with the original client, which calls
// top-level institutions "accounts".
type BankHandler struct {
	bankService services.BankServicer
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankService services.BankServicer) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// CreateBankRequest represents the request payload for creating a bank.
type CreateBankRequest struct {
	OwnerID         uint   `json:"owner_id" binding:"required"`
	Name            string `json:"name" binding:"required,max=100"`
	BankName        string `json:"bank_name" binding:"max=100"`
	InstitutionType string `json:"institution_type" binding:"max=50"`
	LogoColor       string `json:"logo_color" binding:"omitempty,hex_color"`
	Country         string `json:"country" binding:"max=100"`
}

// UpdateBankRequest represents the partial-patch payload for a bank. Omitted
// fields stay unchanged.
type UpdateBankRequest struct {
	OwnerID         *uint   `json:"owner_id"`
	Name            *string `json:"name" binding:"omitempty,max=100"`
	BankName        *string `json:"bank_name" binding:"omitempty,max=100"`
	InstitutionType *string `json:"institution_type" binding:"omitempty,max=50"`
	LogoColor       *string `json:"logo_color" binding:"omitempty,hex_color"`
	Country         *string `json:"country" binding:"omitempty,max=100"`
}

// ListBanks returns all banks with owner names and derived total balances,
// most recently updated first.
func (h *BankHandler) ListBanks(c *gin.Context) {
	banks, err := h.bankService.ListBanks()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": banks})
}

// GetBank returns one bank with its sub-accounts and their logs.
func (h *BankHandler) GetBank(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	bank, err := h.bankService.GetBank(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": bank})
}

// CreateBank creates a bank with its default sub-account.
func (h *BankHandler) CreateBank(c *gin.Context) {
	var req CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bank, err := h.bankService.CreateBank(services.BankCreateFields{
		OwnerID:         req.OwnerID,
		Name:            req.Name,
		BankName:        req.BankName,
		InstitutionType: req.InstitutionType,
		LogoColor:       req.LogoColor,
		Country:         req.Country,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"account": bank})
}

// UpdateBank applies a partial patch to a bank.
func (h *BankHandler) UpdateBank(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	bank, err := h.bankService.UpdateBank(id, services.BankUpdateFields{
		OwnerID:         req.OwnerID,
		Name:            req.Name,
		BankName:        req.BankName,
		InstitutionType: req.InstitutionType,
		LogoColor:       req.LogoColor,
		Country:         req.Country,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"account": bank})
}

// DeleteBank deletes a bank with its sub-accounts and logs.
func (h *BankHandler) DeleteBank(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.bankService.DeleteBank(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
