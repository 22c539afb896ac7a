package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type TopicHandler struct {
	insight services.InsightService
}

func NewTopicHandler(insight services.InsightService) *TopicHandler {
	return &TopicHandler{insight: insight}
}

// GET /api/records/topic/intensity
func (h *TopicHandler) Intensity(c *gin.Context) {
	rows, err := h.insight.AverageBy(c.Request.Context(), "topic", "intensity", selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "topic_intensity_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/topic/likelihood
func (h *TopicHandler) Likelihood(c *gin.Context) {
	rows, err := h.insight.AverageBy(c.Request.Context(), "topic", "likelihood", selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "topic_likelihood_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/topic/top?limit=10
func (h *TopicHandler) Top(c *gin.Context) {
	rows, err := h.insight.TopTopics(c.Request.Context(), selections(c), intQuery(c, "limit", 10))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "top_topics_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
