package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type TimeHandler struct {
	insight services.InsightService
}

func NewTimeHandler(insight services.InsightService) *TimeHandler {
	return &TimeHandler{insight: insight}
}

// GET /api/records/time/insights-per-year
func (h *TimeHandler) InsightsPerYear(c *gin.Context) {
	rows, err := h.insight.InsightsPerYear(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "insights_per_year_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/time/intensity-by-year
func (h *TimeHandler) IntensityByYear(c *gin.Context) {
	rows, err := h.insight.IntensityByYear(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "intensity_by_year_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/time/relevance-over-years
func (h *TimeHandler) RelevanceOverYears(c *gin.Context) {
	rows, err := h.insight.RelevanceByYear(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "relevance_over_years_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
