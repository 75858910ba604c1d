package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/medwatch/disease-insights-api/config"
	"github.com/medwatch/disease-insights-api/extractor"
	"github.com/medwatch/disease-insights-api/handlers"
	"github.com/medwatch/disease-insights-api/health"
	"github.com/medwatch/disease-insights-api/logging"
	"github.com/medwatch/disease-insights-api/scheduler"
	"github.com/medwatch/disease-insights-api/server"
	"github.com/medwatch/disease-insights-api/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogLevel, cfg.MaxLogFileSize)

	ctx := context.Background()
	generator, err := extractor.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		logging.Error("Failed to create text generator", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewHTTPHandler(
		extractor.New(generator),
		validation.NewDiseaseValidator(),
		health.NewHealthChecker(cfg.LLMModel, true),
		cfg.LLMTimeout,
	)

	srv := server.NewServer(cfg, handler)

	maintenance := scheduler.NewMaintenanceScheduler(cfg.LogDir, cfg.LogRetentionWeeks)
	if err := maintenance.Start(); err != nil {
		logging.Error("Failed to start maintenance scheduler", "error", err)
		os.Exit(1)
	}
	defer maintenance.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}
