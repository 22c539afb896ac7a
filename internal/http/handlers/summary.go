package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type SummaryHandler struct {
	insight services.InsightService
}

func NewSummaryHandler(insight services.InsightService) *SummaryHandler {
	return &SummaryHandler{insight: insight}
}

// GET /api/records/summary/missing-data
func (h *SummaryHandler) MissingData(c *gin.Context) {
	census, err := h.insight.MissingData(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "missing_data_failed", err)
		return
	}
	response.RespondOK(c, census)
}

// GET /api/records/summary/kpis
func (h *SummaryHandler) KPIs(c *gin.Context) {
	kpis, err := h.insight.KPIs(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "kpis_failed", err)
		return
	}
	response.RespondOK(c, kpis)
}
