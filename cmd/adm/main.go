// Package main provides the teachassist admin CLI. It runs the content
// pipeline locally over a payload JSON file, for debugging misbehaving AI
// output without a running server.
package main

import (
	"context"
	"fmt"
	"os"

	"teachassist/cmd/adm/commands"
	"teachassist/internal/config"
	"teachassist/internal/observability"
	"teachassist/internal/services"

	"github.com/spf13/cobra"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Quiet logging and no OTLP exports for the CLI
	cfg.Server.LogLevel = "error"
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "teachassist-adm")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if sdkTp, ok := tp.(interface{ Shutdown(context.Context) error }); ok {
			if err := sdkTp.Shutdown(context.TODO()); err != nil {
				logger.Warn(ctx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error()})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(context.TODO()); err != nil {
				logger.Warn(ctx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error()})
			}
		}
	}()

	contentService := services.NewContentService(logger)

	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "teachassist admin CLI",
		Long:  `Run the content normalization pipeline locally over a payload JSON file.`,
	}
	rootCmd.AddCommand(commands.ContentCommands(contentService)...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
