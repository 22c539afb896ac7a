package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type RiskHandler struct {
	insight services.InsightService
}

func NewRiskHandler(insight services.InsightService) *RiskHandler {
	return &RiskHandler{insight: insight}
}

// GET /api/records/risk/high-risk-topics
func (h *RiskHandler) HighRiskTopics(c *gin.Context) {
	rows, err := h.insight.HighRiskTopics(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "high_risk_topics_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/risk/likelihood-intensity
// GET /api/records/risk/matrix
// Both serve the same raw projection; the dashboard renders it two ways.
func (h *RiskHandler) Points(c *gin.Context) {
	rows, err := h.insight.RiskPoints(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "risk_points_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
