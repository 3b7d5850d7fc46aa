package main

import (
	"context"
	"fmt"

	"github.com/acortes/atril/internal/shared"
	"github.com/acortes/atril/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive songbook browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	library := r.resolveLibrary(cmd)

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/atril-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(library)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
