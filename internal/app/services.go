package app

import (
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/services"
)

type Services struct {
	Insight   services.InsightService
	Narrative services.NarrativeService
}

func wireServices(log *logger.Logger, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Insight:   services.NewInsightService(log, reposet.Record, clients.Cache),
		Narrative: services.NewNarrativeService(log, reposet.Record, clients.OpenAI),
	}
}
