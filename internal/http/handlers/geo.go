package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcusvane/insightdash-backend/internal/http/response"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type GeoHandler struct {
	insight services.InsightService
}

func NewGeoHandler(insight services.InsightService) *GeoHandler {
	return &GeoHandler{insight: insight}
}

// GET /api/records/region-heatmap
func (h *GeoHandler) RegionHeatmap(c *gin.Context) {
	rows, err := h.insight.RegionHeatmap(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "region_heatmap_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/sector-by-region
func (h *GeoHandler) SectorByRegion(c *gin.Context) {
	rows, err := h.insight.SectorByRegion(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "sector_by_region_failed", err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/records/country-stats
func (h *GeoHandler) CountryStats(c *gin.Context) {
	rows, err := h.insight.CountryStats(c.Request.Context(), selections(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "country_stats_failed", err)
		return
	}
	response.RespondOK(c, rows)
}
