package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/services"
	"assetsnapshot/internal/timeseries"
)

// ReportHandler handles net worth and trend series requests.
type ReportHandler struct {
	netWorthService services.NetWorthServicer
	seriesService   services.SeriesServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(netWorthService services.NetWorthServicer, seriesService services.SeriesServicer) *ReportHandler {
	return &ReportHandler{netWorthService: netWorthService, seriesService: seriesService}
}

// NetWorth returns per-owner totals and a grand total in the display
// currency (?currency=USD).
func (h *ReportHandler) NetWorth(c *gin.Context) {
	report, err := h.netWorthService.NetWorth(c.Query("currency"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Series returns a forward-filled trend series. Query parameters:
// ?window=1m|ytd|1y|all, ?currency=USD, ?items=bank:1,asset:2 (empty means
// everything).
func (h *ReportHandler) Series(c *gin.Context) {
	window := timeseries.ParseWindow(c.DefaultQuery("window", string(timeseries.WindowAll)))

	items, err := parseItems(c.Query("items"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	points, err := h.seriesService.BuildSeries(services.SeriesRequest{
		Items:           items,
		Window:          window,
		DisplayCurrency: c.Query("currency"),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

// parseItems parses "bank:1,asset:2" into item references.
func parseItems(raw string) ([]services.ItemRef, error) {
	if raw == "" {
		return nil, nil
	}
	var items []services.ItemRef
	for _, part := range strings.Split(raw, ",") {
		kind, idStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || (kind != "bank" && kind != "asset") {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid item "+part)
		}
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid item "+part)
		}
		items = append(items, services.ItemRef{Kind: kind, ID: uint(id)})
	}
	return items, nil
}
