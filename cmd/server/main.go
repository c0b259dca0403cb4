package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkcodedev2/persona-realista/internal/models"
	"github.com/mkcodedev2/persona-realista/pkg/config"
	"github.com/mkcodedev2/persona-realista/pkg/di"
	"github.com/mkcodedev2/persona-realista/pkg/logger"
	"github.com/mkcodedev2/persona-realista/pkg/router"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.New()

	appLogger := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		JSON:  cfg.Logging.Format == "json",
	})
	logger.SetGlobal(appLogger)

	db, err := config.NewDB()
	if err != nil {
		appLogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Character{},
		&models.ChatSession{},
		&models.Message{},
		&models.AIConfig{},
		&models.Relationship{},
		&models.Scenario{},
		&models.CharacterTemplate{},
	); err != nil {
		appLogger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := di.New(ctx, db, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to build dependency container", "error", err)
		os.Exit(1)
	}

	r := router.New(container)
	r.SetupRoutes()

	server := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     r.Engine,
		ReadTimeout: cfg.Server.Timeout,
		// Chat turns wait on the AI provider, so responses need more
		// headroom than ordinary requests.
		WriteTimeout: cfg.Server.Timeout + cfg.AI.RequestTimeout,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", "error", err)
	}

	if container.MeterProvider != nil {
		if err := container.MeterProvider.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("metrics shutdown failed", "error", err)
		}
	}

	appLogger.Info("server stopped")
}
