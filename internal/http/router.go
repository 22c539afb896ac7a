package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/marcusvane/insightdash-backend/internal/http/handlers"
	httpMW "github.com/marcusvane/insightdash-backend/internal/http/middleware"
	"github.com/marcusvane/insightdash-backend/internal/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler      *httpH.HealthHandler
	RecordsHandler     *httpH.RecordsHandler
	CorrelationHandler *httpH.CorrelationHandler
	GeoHandler         *httpH.GeoHandler
	PestleHandler      *httpH.PestleHandler
	RiskHandler        *httpH.RiskHandler
	SectorHandler      *httpH.BreakdownHandler
	SourceHandler      *httpH.BreakdownHandler
	TopicHandler       *httpH.TopicHandler
	SummaryHandler     *httpH.SummaryHandler
	TimeHandler        *httpH.TimeHandler
	NarrativeHandler   *httpH.NarrativeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("insightdash-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	records := r.Group("/api/records")
	{
		if cfg.RecordsHandler != nil {
			records.GET("/", cfg.RecordsHandler.List)
			records.GET("/filters", cfg.RecordsHandler.FilterOptions)
		}

		if cfg.CorrelationHandler != nil {
			records.GET("/correlation-data", cfg.CorrelationHandler.Data)
			records.GET("/correlation/metrics", cfg.CorrelationHandler.Matrix)
			records.GET("/scatter-intensity-relevance", cfg.CorrelationHandler.Scatter)
		}

		if cfg.GeoHandler != nil {
			records.GET("/region-heatmap", cfg.GeoHandler.RegionHeatmap)
			records.GET("/sector-by-region", cfg.GeoHandler.SectorByRegion)
			records.GET("/country-stats", cfg.GeoHandler.CountryStats)
		}

		if cfg.PestleHandler != nil {
			records.GET("/pestle-analysis", cfg.PestleHandler.Analysis)
		}

		if cfg.RiskHandler != nil {
			records.GET("/risk/high-risk-topics", cfg.RiskHandler.HighRiskTopics)
			records.GET("/risk/likelihood-intensity", cfg.RiskHandler.Points)
			records.GET("/risk/matrix", cfg.RiskHandler.Points)
		}

		if cfg.SectorHandler != nil {
			records.GET("/sector/distribution", cfg.SectorHandler.Distribution)
			records.GET("/sector/intensity", cfg.SectorHandler.Intensity)
			records.GET("/sector/likelihood", cfg.SectorHandler.Likelihood)
		}

		if cfg.SourceHandler != nil {
			records.GET("/source/distribution", cfg.SourceHandler.Distribution)
			records.GET("/source/intensity", cfg.SourceHandler.Intensity)
			records.GET("/source/likelihood", cfg.SourceHandler.Likelihood)
		}

		if cfg.TopicHandler != nil {
			records.GET("/topic/intensity", cfg.TopicHandler.Intensity)
			records.GET("/topic/likelihood", cfg.TopicHandler.Likelihood)
			records.GET("/topic/top", cfg.TopicHandler.Top)
		}

		if cfg.SummaryHandler != nil {
			records.GET("/summary/missing-data", cfg.SummaryHandler.MissingData)
			records.GET("/summary/kpis", cfg.SummaryHandler.KPIs)
		}

		if cfg.TimeHandler != nil {
			records.GET("/time/insights-per-year", cfg.TimeHandler.InsightsPerYear)
			records.GET("/time/intensity-by-year", cfg.TimeHandler.IntensityByYear)
			records.GET("/time/relevance-over-years", cfg.TimeHandler.RelevanceOverYears)
		}

		if cfg.NarrativeHandler != nil {
			records.POST("/ai/summary", cfg.NarrativeHandler.Summary)
			records.POST("/ai/chat", cfg.NarrativeHandler.Chat)
		}
	}

	return r
}
