package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
	"github.com/urfave/cli/v3"
)

// Songs lists the dropdown projection in set order.
func (r *Runner) Songs(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.resolveLibrary(cmd).Dropdown()
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	for _, entry := range entries {
		r.writePlain("%d. %s\n", entry.Order, entry.Label)
	}
	return nil
}

// Song shows a single song with every instrument slot.
func (r *Runner) Song(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id argument is required", shared.ErrInvalidInput)
	}

	detail, err := r.resolveLibrary(cmd).Song(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlain("%s - %s\n", detail.Artist, detail.Title)
	r.writePlain("duration %s, position %d\n", detail.Duration, detail.Order)
	for _, slot := range models.Slots() {
		name := "-"
		if assigned := detail.Assignments[slot]; assigned != nil {
			name = *assigned
		}
		r.writePlain("  %-14s %s\n", slotLabel(slot), name)
	}
	if detail.Next != nil {
		r.writePlain("next: %s\n", detail.Next.Label)
	}
	return nil
}

// Musician lists every song the named musician is assigned to.
func (r *Runner) Musician(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: musician name argument is required", shared.ErrInvalidInput)
	}

	detail, err := r.resolveLibrary(cmd).Musician(name)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlain("%s plays on %d song(s)\n", detail.Name, len(detail.Songs))
	for _, song := range detail.Songs {
		r.writePlain("%d. %s (%s) - %s\n", song.Order, song.Title, song.Duration, strings.Join(song.Slots, ", "))
	}
	return nil
}

// Check builds the consistency report and fails when the source is invalid.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	report, err := r.resolveLibrary(cmd).Report()
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(report, cmd.Bool("pretty")); err != nil {
			return err
		}
	} else if report.Valid {
		r.writePlain("source is consistent\n")
		for _, issue := range report.Issues {
			r.writePlain("  note: %s\n", issue)
		}
	} else {
		r.writePlain("found %d issue(s)\n", len(report.Issues))
		for _, issue := range report.Issues {
			r.writePlain("  - %s\n", issue)
		}
	}

	if !report.Valid {
		return fmt.Errorf("%w: consistency check failed", shared.ErrSourceInvalid)
	}
	return nil
}

func slotLabel(slot models.Slot) string {
	return strings.ReplaceAll(string(slot), "_", " ")
}
