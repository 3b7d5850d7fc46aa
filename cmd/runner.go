package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/acortes/atril/internal/live"
	"github.com/acortes/atril/internal/shared"
	"github.com/acortes/atril/internal/songbook"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	library  *songbook.Library
	sessions *live.Store
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Library  *songbook.Library
	Sessions *live.Store
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Library == nil {
		opts.Library = songbook.New(songbook.Options{
			Path:              opts.Config.Songbook.Path,
			Logger:            opts.Logger,
			FallbackThreshold: opts.Config.Songbook.FallbackThreshold,
			RetryAttempts:     opts.Config.Songbook.RetryAttempts,
			RetryDelay:        opts.Config.Songbook.RetryDelay(),
		})
	}
	if opts.Sessions == nil {
		opts.Sessions = live.NewStore(opts.Library, opts.Logger)
	}

	return &Runner{
		config:   opts.Config,
		library:  opts.Library,
		sessions: opts.Sessions,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, songsCommand, songCommand, musicianCommand, checkCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, used when the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// resolveLibrary returns the runner's library, or a fresh one when the command
// overrides the source path with --csv.
func (r *Runner) resolveLibrary(cmd *cli.Command) *songbook.Library {
	path := cmd.String("csv")
	if path == "" || path == r.config.Songbook.Path {
		return r.library
	}

	return songbook.New(songbook.Options{
		Path:              path,
		Logger:            r.logger,
		FallbackThreshold: r.config.Songbook.FallbackThreshold,
		RetryAttempts:     r.config.Songbook.RetryAttempts,
		RetryDelay:        r.config.Songbook.RetryDelay(),
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
