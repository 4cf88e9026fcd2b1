package main

import (
	"flag"
	"log"

	"recurring-detector/pkg/config"
	"recurring-detector/pkg/logger"
	"recurring-detector/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	down := flag.Int("down", 0, "number of migrations to roll back instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if *down > 0 {
		if err := postgres.RollbackMigrations(&cfg.Database, *down, appLogger); err != nil {
			appLogger.Fatal("Rollback failed", zap.Error(err))
		}
		return
	}

	if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Migration failed", zap.Error(err))
	}
}
