package app

import (
	"gorm.io/gorm"

	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/repos"
)

type Repos struct {
	Record repos.RecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Record: repos.NewRecordRepo(db, log),
	}
}
