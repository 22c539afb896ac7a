package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type RecordsHandler struct {
	insight services.InsightService
}

func NewRecordsHandler(insight services.InsightService) *RecordsHandler {
	return &RecordsHandler{insight: insight}
}

// selections lifts the recognized filter params out of the request.
func selections(c *gin.Context) filters.Selections {
	return filters.FromValues(c.Request.URL.Query())
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// GET /api/records
func (h *RecordsHandler) List(c *gin.Context) {
	page, err := h.insight.ListRecords(c.Request.Context(), selections(c),
		intQuery(c, "page", 1), intQuery(c, "limit", 50))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "records_fetch_failed", err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/records/filters
func (h *RecordsHandler) FilterOptions(c *gin.Context) {
	opts, err := h.insight.FilterOptions(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "filter_options_failed", err)
		return
	}
	response.RespondOK(c, opts)
}
