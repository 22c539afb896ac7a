package app

import (
	"github.com/marcusvane/insightdash-backend/internal/clients/openai"
	"github.com/marcusvane/insightdash-backend/internal/clients/redis"
	"github.com/marcusvane/insightdash-backend/internal/logger"
)

type Clients struct {
	OpenAI openai.Client // nil when OPENAI_API_KEY is absent
	Cache  redis.Cache   // nil when REDIS_ADDR is absent
}

// wireClients builds the optional outbound clients. Both degrade to nil:
// the narrative layer answers with aggregates only, and reads skip the
// cache.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	var c Clients

	if llm, err := openai.NewClient(log); err != nil {
		log.Warn("OpenAI client unavailable; narratives degrade to aggregates", "error", err.Error())
	} else {
		c.OpenAI = llm
	}

	if cache, err := redis.NewCache(log); err != nil {
		log.Warn("Redis cache unavailable; running uncached", "error", err.Error())
	} else {
		c.Cache = cache
	}

	return c
}
