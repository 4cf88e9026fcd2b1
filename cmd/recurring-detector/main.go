package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recurring-detector/internal/api"
	"recurring-detector/internal/api/handlers"
	"recurring-detector/internal/repository"
	"recurring-detector/internal/service"
	"recurring-detector/pkg/auth"
	"recurring-detector/pkg/config"
	"recurring-detector/pkg/logger"
	"recurring-detector/pkg/postgres"

	"go.uber.org/zap"
)

// @title Recurring Detector API
// @version 1.0
// @description Detects subscriptions, bills and other recurring charges from transaction history

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting recurring detector service")

	if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	txRepo := repository.NewTransactionRepository(db, logger.Named("transactions"))
	accountRepo := repository.NewAccountRepository(db, logger.Named("accounts"))
	categoryRepo := repository.NewCategoryRepository(db, cfg.Detector.CategoryCacheTTL, logger.Named("categories"))
	recurringRepo := repository.NewRecurringRepository(db, logger.Named("recurring"))

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration)

	recurringService := service.NewRecurringService(
		txRepo, accountRepo, categoryRepo, recurringRepo, &cfg.Detector, logger.Named("detector"),
	)

	recurringHandler := handlers.NewRecurringHandler(recurringService, appLogger)

	app := api.SetupRouter(recurringHandler, jwtManager, &cfg.Detector, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
