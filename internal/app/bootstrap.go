package app

import (
	"context"
	"os"

	"scribe/internal/config"
)

// BootstrapOptions tunes configuration for a CLI entry point.
type BootstrapOptions struct {
	// Verbose forces debug logging.
	Verbose bool
	// Quiet lowers the default log level to warn for interactive commands.
	Quiet bool
	// RequireLLM fails when no LLM key is configured.
	RequireLLM bool
}

// Bootstrap loads .env and the configuration, then builds the application.
func Bootstrap(ctx context.Context, opts BootstrapOptions) (*Application, func(), error) {
	if _, err := config.LoadEnv(); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	switch {
	case opts.Verbose:
		cfg.LogLevel = "debug"
	case opts.Quiet && os.Getenv("LOG_LEVEL") == "":
		cfg.LogLevel = "warn"
	}

	if opts.RequireLLM {
		if err := cfg.RequireLLM(); err != nil {
			return nil, nil, err
		}
	}

	return InitializeApplication(ctx, cfg)
}
