package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type CorrelationHandler struct {
	insight services.InsightService
}

func NewCorrelationHandler(insight services.InsightService) *CorrelationHandler {
	return &CorrelationHandler{insight: insight}
}

// GET /api/records/correlation-data
func (h *CorrelationHandler) Data(c *gin.Context) {
	rows, err := h.insight.CorrelationData(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "correlation_data_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/correlation/metrics
func (h *CorrelationHandler) Matrix(c *gin.Context) {
	matrix, err := h.insight.CorrelationMatrix(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "correlation_matrix_failed", err)
		return
	}
	response.RespondOK(c, matrix)
}

// GET /api/records/scatter-intensity-relevance
func (h *CorrelationHandler) Scatter(c *gin.Context) {
	points, err := h.insight.Scatter(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "scatter_data_failed", err)
		return
	}
	response.RespondOK(c, points)
}
