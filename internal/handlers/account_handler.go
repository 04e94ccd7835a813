package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
)

// AccountHandler handles sub-account requests (routes under
// /api/sub-accounts).
type AccountHandler struct {
	accountService services.AccountServicer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService services.AccountServicer) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccountRequest represents the request payload for creating a
// sub-account.
type CreateAccountRequest struct {
	BankID        uint   `json:"bank_id" binding:"required"`
	Name          string `json:"name" binding:"required,max=100"`
	Type          string `json:"type" binding:"max=50"`
	AccountNumber string `json:"account_number" binding:"max=50"`
}

// UpdateAccountRequest represents the partial-patch payload for a
// sub-account.
type UpdateAccountRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=100"`
	Type          *string `json:"type" binding:"omitempty,max=50"`
	AccountNumber *string `json:"account_number" binding:"omitempty,max=50"`
}

// CreateAccount creates a sub-account under a bank.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.CreateAccount(services.AccountCreateFields{
		BankID:        req.BankID,
		Name:          req.Name,
		Type:          req.Type,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sub_account": account})
}

// UpdateAccount applies a partial patch to a sub-account.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.accountService.UpdateAccount(id, services.AccountUpdateFields{
		Name:          req.Name,
		Type:          req.Type,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sub_account": account})
}

// DeleteAccount deletes a sub-account and its logs.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.accountService.DeleteAccount(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub-account deleted successfully"})
}
