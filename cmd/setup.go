package main

import (
	"context"
	"fmt"
	"os"

	"github.com/acortes/atril/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter config file at the given path.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.writePlain("config already exists at %s\n", configPath)
		return nil
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("wrote %s\n", configPath)
	r.writePlain("edit songbook.path to point at your CSV file\n")
	return nil
}
