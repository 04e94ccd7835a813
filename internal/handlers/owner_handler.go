package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
)

// OwnerHandler handles owner-related requests.
type OwnerHandler struct {
	ownerService services.OwnerServicer
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(ownerService services.OwnerServicer) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// CreateOwnerRequest represents the request payload for creating an owner.
type CreateOwnerRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ListOwners returns all owners.
func (h *OwnerHandler) ListOwners(c *gin.Context) {
	owners, err := h.ownerService.ListOwners()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owners": owners})
}

// CreateOwner creates a new owner. Duplicate names return 409.
func (h *OwnerHandler) CreateOwner(c *gin.Context) {
	var req CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	owner, err := h.ownerService.CreateOwner(req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"owner": owner})
}

// DeleteOwner deletes an owner and everything it owns.
func (h *OwnerHandler) DeleteOwner(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ownerService.DeleteOwner(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Owner deleted successfully"})
}
