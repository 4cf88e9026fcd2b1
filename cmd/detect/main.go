// Command detect runs one recurring detection pass for a user and prints the
// stored result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"recurring-detector/internal/dto"
	"recurring-detector/internal/repository"
	"recurring-detector/internal/service"
	"recurring-detector/pkg/config"
	"recurring-detector/pkg/logger"
	"recurring-detector/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	userFlag := flag.String("user", "", "user ID to run detection for")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("Invalid -user %q: %v", *userFlag, err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	recurringService := service.NewRecurringService(
		repository.NewTransactionRepository(db, appLogger),
		repository.NewAccountRepository(db, appLogger),
		repository.NewCategoryRepository(db, cfg.Detector.CategoryCacheTTL, appLogger),
		repository.NewRecurringRepository(db, appLogger),
		&cfg.Detector,
		appLogger,
	)

	records, err := recurringService.Detect(ctx, userID)
	if err != nil {
		appLogger.Fatal("Detection failed", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.DetectResponse{
		Recurring: dto.NewRecurringList(records),
		Count:     len(records),
	}); err != nil {
		appLogger.Fatal("Failed to write output", zap.Error(err))
	}
}
