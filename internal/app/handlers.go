package app

import (
	httpH "github.com/marcusvane/insightdash-backend/internal/http/handlers"
	"github.com/marcusvane/insightdash-backend/internal/logger"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Records     *httpH.RecordsHandler
	Correlation *httpH.CorrelationHandler
	Geo         *httpH.GeoHandler
	Pestle      *httpH.PestleHandler
	Risk        *httpH.RiskHandler
	Sector      *httpH.BreakdownHandler
	Source      *httpH.BreakdownHandler
	Topic       *httpH.TopicHandler
	Summary     *httpH.SummaryHandler
	Time        *httpH.TimeHandler
	Narrative   *httpH.NarrativeHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Records:     httpH.NewRecordsHandler(serviceset.Insight),
		Correlation: httpH.NewCorrelationHandler(serviceset.Insight),
		Geo:         httpH.NewGeoHandler(serviceset.Insight),
		Pestle:      httpH.NewPestleHandler(serviceset.Insight),
		Risk:        httpH.NewRiskHandler(serviceset.Insight),
		Sector:      httpH.NewBreakdownHandler(serviceset.Insight, "sector"),
		Source:      httpH.NewBreakdownHandler(serviceset.Insight, "source"),
		Topic:       httpH.NewTopicHandler(serviceset.Insight),
		Summary:     httpH.NewSummaryHandler(serviceset.Insight),
		Time:        httpH.NewTimeHandler(serviceset.Insight),
		Narrative:   httpH.NewNarrativeHandler(serviceset.Narrative),
	}
}
