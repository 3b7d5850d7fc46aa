package main

import (
	"context"
	"os"

	"github.com/acortes/atril/internal/live"
	"github.com/acortes/atril/internal/shared"
	"github.com/acortes/atril/internal/songbook"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	library := songbook.New(songbook.Options{
		Path:              config.Songbook.Path,
		Logger:            logger,
		FallbackThreshold: config.Songbook.FallbackThreshold,
		RetryAttempts:     config.Songbook.RetryAttempts,
		RetryDelay:        config.Songbook.RetryDelay(),
	})
	sessions := live.NewStore(library, logger)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Library:  library,
		Sessions: sessions,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "atril",
		Usage:    "Serve and inspect a CSV-backed band songbook",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
