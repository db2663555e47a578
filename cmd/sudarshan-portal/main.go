package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sudarshan-portal/internal/ai"
	"sudarshan-portal/internal/api"
	"sudarshan-portal/internal/api/handlers"
	"sudarshan-portal/internal/repository"
	"sudarshan-portal/internal/service"
	"sudarshan-portal/pkg/config"
	"sudarshan-portal/pkg/logger"
	"sudarshan-portal/pkg/postgres"
	"sudarshan-portal/pkg/telemetry"

	"go.uber.org/zap"
)

// @title Sudarshan AI Portal API
// @version 1.0
// @description Bookkeeping backend for small businesses: transactions, AI daily reports, bill scanning and analytics.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Sudarshan AI Portal", zap.String("ai_provider", cfg.AI.Provider))

	shutdownTracing, err := telemetry.Setup(&cfg.Telemetry, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to set up tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			appLogger.Warn("Tracer shutdown error", zap.Error(err))
		}
	}()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	reportRepo := repository.NewReportRepository(db, appLogger)
	scanRepo := repository.NewScanRepository(db, appLogger)

	generator, err := ai.New(ctx, &cfg.AI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}
	defer generator.Close()

	authService := service.NewAuthService(userRepo, appLogger)
	txService := service.NewTransactionService(txRepo, appLogger)
	reportService := service.NewReportService(txRepo, reportRepo, generator, appLogger)
	analyticsService := service.NewAnalyticsService(txRepo, appLogger)
	scanService := service.NewScanService(scanRepo, generator, appLogger)
	voiceService := service.NewVoiceService(appLogger)

	app := api.SetupRouter(&cfg.Server, &api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, appLogger),
		Transaction: handlers.NewTransactionHandler(txService, appLogger),
		Report:      handlers.NewReportHandler(reportService, appLogger),
		Analytics:   handlers.NewAnalyticsHandler(analyticsService, appLogger),
		Scan:        handlers.NewScanHandler(scanService, appLogger),
		Voice:       handlers.NewVoiceHandler(voiceService, appLogger),
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
