package app

import (
	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/utils"
)

type Config struct {
	Port     string
	LogMode  string
	Env      string
	Version  string
	CacheTTL int
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:     utils.GetEnv("PORT", "8080", log),
		LogMode:  utils.GetEnv("LOG_MODE", "development", log),
		Env:      utils.GetEnv("APP_ENV", "development", log),
		Version:  utils.GetEnv("APP_VERSION", "dev", log),
		CacheTTL: utils.GetEnvAsInt("REDIS_TTL_SECONDS", 300, log),
	}
}
