package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type PestleHandler struct {
	insight services.InsightService
}

func NewPestleHandler(insight services.InsightService) *PestleHandler {
	return &PestleHandler{insight: insight}
}

// GET /api/records/pestle-analysis
func (h *PestleHandler) Analysis(c *gin.Context) {
	rows, err := h.insight.PestleAnalysis(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "pestle_analysis_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
