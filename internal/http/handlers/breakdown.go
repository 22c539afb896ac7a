package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

// BreakdownHandler serves the per-field chart family (distribution plus
// average-by-metric rankings). The sector and source routes are the same
// shape over different fields, so one handler covers both.
type BreakdownHandler struct {
	insight services.InsightService
	field   string
}

func NewBreakdownHandler(insight services.InsightService, field string) *BreakdownHandler {
	return &BreakdownHandler{insight: insight, field: field}
}

// GET /api/records/<field>/distribution
func (h *BreakdownHandler) Distribution(c *gin.Context) {
	rows, err := h.insight.Distribution(c.Request.Context(), h.field, selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, h.field+"_distribution_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/<field>/intensity
func (h *BreakdownHandler) Intensity(c *gin.Context) {
	h.averageBy(c, "intensity")
}

// GET /api/records/<field>/likelihood
func (h *BreakdownHandler) Likelihood(c *gin.Context) {
	h.averageBy(c, "likelihood")
}

func (h *BreakdownHandler) averageBy(c *gin.Context, metric string) {
	rows, err := h.insight.AverageBy(c.Request.Context(), h.field, metric, selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, h.field+"_"+metric+"_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
