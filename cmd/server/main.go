package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LuckyTW/ppt-creator/internal/api"
	"github.com/LuckyTW/ppt-creator/internal/app"
	"github.com/LuckyTW/ppt-creator/internal/infra/config"
	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	metrics.MustRegister()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Wire pipeline, storage and AI
	a, err := app.New(ctx, cfg, zapLogger, nil)
	if err != nil {
		zapLogger.Error("failed to init application", "error", err)
		os.Exit(1)
	}
	a.RunJanitors(ctx)

	handler := api.NewHandler(a.Orchestrator, a.Store, api.Options{
		Upload: cfg.Upload,
		Stream: cfg.Stream,
	}, zapLogger)
	router := api.NewRouter(handler, zapLogger)

	// Create server
	srv := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     router,
		ReadTimeout: time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		// status streams stay open for minutes
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	// Start server
	go func() {
		zapLogger.Info("starting server",
			"addr", cfg.Server.Addr,
			"storage", cfg.Storage.Type,
			"ai_provider", cfg.AI.Provider,
			"ai_enabled", a.AIEnabled,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", "error", err)
	}
	stop()
	zapLogger.Info("server stopped")
}
