package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/logger"
	"assetsnapshot/internal/services"
	"assetsnapshot/internal/spreadsheet"
)

// DatasetHandler handles bulk export, import, and reset requests.
type DatasetHandler struct {
	datasetService services.DatasetServicer
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(datasetService services.DatasetServicer) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

// Export returns the full dataset as JSON.
func (h *DatasetHandler) Export(c *gin.Context) {
	ds, err := h.datasetService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}

// Import replaces the full dataset from a JSON payload. Any failure rolls the
// whole import back.
func (h *DatasetHandler) Import(c *gin.Context) {
	var ds services.Dataset
	if err := c.ShouldBindJSON(&ds); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.datasetService.Import(&ds); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Import completed successfully"})
}

// Reset wipes the dataset and reseeds the defaults.
func (h *DatasetHandler) Reset(c *gin.Context) {
	if err := h.datasetService.Reset(); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset completed successfully"})
}

// ExportXLSX returns the full dataset as an xlsx workbook attachment.
func (h *DatasetHandler) ExportXLSX(c *gin.Context) {
	ds, err := h.datasetService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}

	f, err := spreadsheet.Encode(ds)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("AssetSnapshot_Export_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		// headers already sent; nothing useful to return
		logger.Get().Errorw("workbook write failed", "error", err.Error())
	}
}

// ImportXLSX replaces the full dataset from an uploaded workbook. The file is
// parsed completely before any store mutation.
func (h *DatasetHandler) ImportXLSX(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrImportFailed, err))
		return
	}
	defer file.Close()

	ds, err := spreadsheet.Decode(file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.datasetService.Import(ds); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Import completed successfully"})
}
