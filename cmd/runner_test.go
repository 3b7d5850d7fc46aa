package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/acortes/atril/internal/atriltest"
	"github.com/acortes/atril/internal/live"
	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
	"github.com/acortes/atril/internal/songbook"
	"github.com/urfave/cli/v3"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(io.Discard)
			output := &bytes.Buffer{}
			library := songbook.New(songbook.Options{Path: "songs.csv", Logger: logger})
			sessions := live.NewStore(library, logger)

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Library:  library,
				Sessions: sessions,
				Logger:   logger,
				Output:   output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.library != library {
				t.Error("expected library to be set")
			}
			if runner.sessions != sessions {
				t.Error("expected sessions to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil library builds one from config", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard)})

			if runner.library == nil {
				t.Error("expected library to be built")
			}
			if runner.sessions == nil {
				t.Error("expected session store to be built")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})
}

// newTestApp builds a runner over a buffer and wraps it in a root command.
func newTestApp(t *testing.T) (*cli.Command, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})

	app := &cli.Command{
		Name:     "atril",
		Commands: runner.register(),
	}
	return app, output
}

func TestSongsCommand(t *testing.T) {
	path := atriltest.TempSongFile(t, atriltest.Header(), [][]string{
		atriltest.Row("A", "X", "3:30", "2"),
		atriltest.Row("B", "Y", "4:00", "1"),
	})
	app, output := newTestApp(t)

	if err := app.Run(context.Background(), []string{"atril", "songs", "--csv", path}); err != nil {
		t.Fatalf("songs command failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), output.String())
	}
	if lines[0] != "1. B - Y" || lines[1] != "2. A - X" {
		t.Errorf("unexpected listing: %v", lines)
	}
}

func TestSongCommand(t *testing.T) {
	path := atriltest.TempSongFile(t, atriltest.Header(), [][]string{
		atriltest.Row("A", "X", "3:30", "1"),
		atriltest.Row("B", "Y", "4:00", "2"),
	})

	t.Run("json output", func(t *testing.T) {
		app, output := newTestApp(t)

		if err := app.Run(context.Background(), []string{"atril", "song", "--csv", path, "--json", "a-x"}); err != nil {
			t.Fatalf("song command failed: %v", err)
		}

		var detail models.SongDetail
		if err := json.Unmarshal(output.Bytes(), &detail); err != nil {
			t.Fatalf("failed to decode output %q: %v", output.String(), err)
		}
		if detail.ID != "a-x" || detail.Next == nil || detail.Next.ID != "b-y" {
			t.Errorf("unexpected detail %+v", detail)
		}
	})

	t.Run("plain output lists slots", func(t *testing.T) {
		app, output := newTestApp(t)

		if err := app.Run(context.Background(), []string{"atril", "song", "--csv", path, "a-x"}); err != nil {
			t.Fatalf("song command failed: %v", err)
		}
		if !strings.Contains(output.String(), "lead guitar") {
			t.Errorf("expected slot listing, got %q", output.String())
		}
	})

	t.Run("missing id argument", func(t *testing.T) {
		app, _ := newTestApp(t)

		err := app.Run(context.Background(), []string{"atril", "song", "--csv", path})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestMusicianCommand(t *testing.T) {
	path := atriltest.TempSongFile(t, atriltest.Header(), [][]string{
		atriltest.Row("A", "X", "3:30", "1"),
		atriltest.Row("B", "Y", "4:00", "2"),
	})
	app, output := newTestApp(t)

	if err := app.Run(context.Background(), []string{"atril", "musician", "--csv", path, "Ana"}); err != nil {
		t.Fatalf("musician command failed: %v", err)
	}
	if !strings.Contains(output.String(), "Ana plays on 2 song(s)") {
		t.Errorf("unexpected output %q", output.String())
	}
}

func TestCheckCommand(t *testing.T) {
	t.Run("consistent source", func(t *testing.T) {
		path := atriltest.TempSongFile(t, atriltest.Header(), [][]string{
			atriltest.Row("A", "X", "3:30", "1"),
			atriltest.Row("B", "Y", "4:00", "2"),
		})
		app, output := newTestApp(t)

		if err := app.Run(context.Background(), []string{"atril", "check", "--csv", path}); err != nil {
			t.Fatalf("check command failed: %v", err)
		}
		if !strings.Contains(output.String(), "source is consistent") {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("duplicate rows fail the check", func(t *testing.T) {
		path := atriltest.TempSongFile(t, atriltest.Header(), [][]string{
			atriltest.Row("A", "X", "3:30", "1"),
			atriltest.Row("A", "X", "3:30", "1"),
		})
		app, output := newTestApp(t)

		err := app.Run(context.Background(), []string{"atril", "check", "--csv", path})
		if !errors.Is(err, shared.ErrSourceInvalid) {
			t.Errorf("expected ErrSourceInvalid, got %v", err)
		}
		if !strings.Contains(output.String(), "issue") {
			t.Errorf("expected issue listing, got %q", output.String())
		}
	})
}

func TestSetupCommand(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	app, output := newTestApp(t)

	if err := app.Run(context.Background(), []string{"atril", "setup", "--config", configPath}); err != nil {
		t.Fatalf("setup command failed: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		t.Fatalf("created config should parse: %v", err)
	}
	if config.Songbook.Path == "" {
		t.Error("expected a default songbook path")
	}

	output.Reset()
	if err := app.Run(context.Background(), []string{"atril", "setup", "--config", configPath}); err != nil {
		t.Fatalf("second setup run should not fail: %v", err)
	}
	if !strings.Contains(output.String(), "already exists") {
		t.Errorf("unexpected output %q", output.String())
	}
}
