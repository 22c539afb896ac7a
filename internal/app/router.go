package app

import (
	"github.com/gin-gonic/gin"

	apihttp "github.com/marcusvane/insightdash-backend/internal/http"
	"github.com/marcusvane/insightdash-backend/internal/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	return apihttp.NewRouter(apihttp.RouterConfig{
		Log: log,

		HealthHandler:      handlerset.Health,
		RecordsHandler:     handlerset.Records,
		CorrelationHandler: handlerset.Correlation,
		GeoHandler:         handlerset.Geo,
		PestleHandler:      handlerset.Pestle,
		RiskHandler:        handlerset.Risk,
		SectorHandler:      handlerset.Sector,
		SourceHandler:      handlerset.Source,
		TopicHandler:       handlerset.Topic,
		SummaryHandler:     handlerset.Summary,
		TimeHandler:        handlerset.Time,
		NarrativeHandler:   handlerset.Narrative,
	})
}
