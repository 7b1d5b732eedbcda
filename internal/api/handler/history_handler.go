package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pickit/print-system/internal/core/ports"
)

// HistoryHandler reads the archive of collected jobs for the operator console.
type HistoryHandler struct {
	history ports.HistoryService
}

func NewHistoryHandler(history ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type historyListResponse struct {
	Data []ports.HistoryItem `json:"data"`
}

// List handles GET /v1/operator/history, most recent first.
//
// @Summary      List archived jobs
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  historyListResponse
// @Router       /v1/operator/history [get]
func (h *HistoryHandler) List(c echo.Context) error {
	_, _, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items, err := h.history.List(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []ports.HistoryItem{}
	}
	return c.JSON(http.StatusOK, historyListResponse{Data: items})
}

// Summary handles GET /v1/operator/history/summary.
//
// @Summary      Aggregate the archive
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.HistorySummary
// @Router       /v1/operator/history/summary [get]
func (h *HistoryHandler) Summary(c echo.Context) error {
	_, _, shopID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	summary, err := h.history.Summary(c.Request().Context(), shopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
