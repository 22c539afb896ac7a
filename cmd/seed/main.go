package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/marcusvane/insightdash-backend/internal/db"
	"github.com/marcusvane/insightdash-backend/internal/ingest"
	"github.com/marcusvane/insightdash-backend/internal/logger"
)

func main() {
	manifestPath := flag.String("manifest", "", "path to a YAML load manifest")
	dataFile := flag.String("file", "", "path to a JSON dataset (ignored when -manifest is set)")
	truncate := flag.Bool("truncate", false, "delete existing records before loading")
	flag.Parse()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var manifest ingest.Manifest
	switch {
	case *manifestPath != "":
		manifest, err = ingest.LoadManifest(*manifestPath)
		if err != nil {
			log.Fatal("Manifest load failed", "error", err.Error())
		}
	case *dataFile != "":
		manifest = ingest.Manifest{File: *dataFile, Truncate: *truncate}
	default:
		log.Fatal("Either -manifest or -file is required")
	}

	store, err := db.NewStoreService(log)
	if err != nil {
		log.Fatal("Store init failed", "error", err.Error())
	}
	if err := store.AutoMigrateAll(); err != nil {
		log.Fatal("Store automigrate failed", "error", err.Error())
	}

	loader := ingest.NewLoader(store.DB(), log)
	n, err := loader.Load(context.Background(), manifest)
	if err != nil {
		log.Fatal("Dataset load failed", "error", err.Error())
	}
	log.Info("Seed complete", "records", n)
}
