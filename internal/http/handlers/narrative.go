package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/filters"
	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type NarrativeHandler struct {
	narrative services.NarrativeService
}

func NewNarrativeHandler(narrative services.NarrativeService) *NarrativeHandler {
	return &NarrativeHandler{narrative: narrative}
}

// POST /api/records/ai/summary
// body: { "filters": { "sector": "Energy,Retail", "end_year": "2020", ... } }
func (h *NarrativeHandler) Summary(c *gin.Context) {
	var req struct {
		Filters filters.Selections `json:"filters"`
	}
	// An empty body means "summarize everything".
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}

	out, err := h.narrative.Summary(c.Request.Context(), req.Filters)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "summary_failed", err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/records/ai/chat
// body: { "question": "...", "filters": { ... } }
func (h *NarrativeHandler) Chat(c *gin.Context) {
	var req struct {
		Question string             `json:"question"`
		Filters  filters.Selections `json:"filters"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Question == "" {
		response.RespondError(c, http.StatusBadRequest, "question_required", errors.New("question required"))
		return
	}

	out, err := h.narrative.Chat(c.Request.Context(), req.Question, req.Filters)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "chat_failed", err)
		return
	}
	response.RespondOK(c, out)
}
