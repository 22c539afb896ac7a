package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marcusvane/insightdash-backend/internal/logger"
	"github.com/marcusvane/insightdash-backend/internal/types"
	"github.com/marcusvane/insightdash-backend/internal/utils"
)

// StoreService owns the record store connection. Postgres is the production
// driver; STORE_DRIVER=sqlite opens a file-backed store for local
// development and demos. The aggregation SQL in repos only uses portable
// expressions (COALESCE, NULLIF, AVG, GROUP BY), so both drivers produce
// identical results.
type StoreService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreService(log *logger.Logger) (*StoreService, error) {
	serviceLog := log.With("service", "StoreService")

	driver := utils.GetEnv("STORE_DRIVER", "postgres", log)

	var (
		conn *gorm.DB
		err  error
	)
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "insightdash.db", log)
		serviceLog.Info("Opening sqlite store", "path", path)
		conn, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
		port := utils.GetEnv("POSTGRES_PORT", "5432", log)
		user := utils.GetEnv("POSTGRES_USER", "postgres", log)
		password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
		name := utils.GetEnv("POSTGRES_NAME", "insightdash", log)

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		serviceLog.Info("Connecting to Postgres...", "host", host, "db", name)
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		serviceLog.Error("Failed to open record store", "driver", driver, "error", err)
		return nil, fmt.Errorf("open record store (%s): %w", driver, err)
	}

	return &StoreService{db: conn, log: serviceLog}, nil
}

func (s *StoreService) AutoMigrateAll() error {
	s.log.Info("Auto migrating record store tables...")
	if err := s.db.AutoMigrate(&types.Record{}); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *StoreService) DB() *gorm.DB {
	return s.db
}
