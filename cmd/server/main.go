// Package main provides the main entry point for the teachassist server.
// It sets up observability, the content and answer services, and the HTTP
// API routes.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teachassist/internal/config"
	"teachassist/internal/handlers"
	"teachassist/internal/observability"
	"teachassist/internal/services"
	contextutils "teachassist/internal/utils"

	"github.com/gin-gonic/gin"
)

// Application bundles the router with its services so startup is testable.
type Application struct {
	router *gin.Engine
}

// NewApplication wires services and the router.
func NewApplication(cfg *config.Config, logger *observability.Logger) *Application {
	contentService := services.NewContentService(logger)
	answerService := services.NewAnswerService(cfg, logger)

	router := handlers.NewRouter(cfg, contentService, answerService, logger)
	return &Application{router: router}
}

// Run starts the HTTP server and blocks until it fails or ctx is cancelled.
func (a *Application) Run(ctx context.Context, port string) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := a.router.Run(":" + port); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		return contextutils.WrapError(err, "server failed")
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "teachassist")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		// The Auto SDK provider has no Shutdown; only flush the standard SDK one.
		if sdkTp, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
			if err := sdkTp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error(), "provider": "tracer"})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error(), "provider": "meter"})
			}
		}
	}()

	logger.Info(ctx, "Starting teachassist service", map[string]interface{}{
		"port":     cfg.Server.Port,
		"logLevel": cfg.Server.LogLevel,
	})

	app := NewApplication(cfg, logger)

	appErr := make(chan error, 1)
	go func() {
		if err := app.Run(ctx, cfg.Server.Port); err != nil {
			appErr <- err
		}
	}()

	select {
	case <-shutdownCh:
		logger.Info(ctx, "Received shutdown signal, shutting down gracefully", nil)
	case err := <-appErr:
		logger.Error(ctx, "Application failed", err, nil)
		os.Exit(1)
	}

	cancel()
	if err := logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing logs: %v\n", err)
	}

	logger.Info(context.Background(), "Shutdown completed successfully", nil)
}
