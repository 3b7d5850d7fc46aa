package songbook

import (
	"io"
	"testing"

	"github.com/acortes/atril/internal/atriltest"
	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
)

func songFixture(artist, title string) *models.Song {
	return &models.Song{
		ID:          DeriveID(artist, title),
		Artist:      artist,
		Title:       title,
		Duration:    DefaultDuration,
		Assignments: map[models.Slot]string{},
	}
}

// newTestLibrary builds a Library over the given path with a quiet logger and
// a low fallback threshold.
func newTestLibrary(t *testing.T, path string) *Library {
	t.Helper()
	return New(Options{
		Path:              path,
		Logger:            shared.NewLogger(io.Discard),
		FallbackThreshold: 2,
	})
}

// writeScenario writes the three-song scenario used across the cache tests:
// explicit orders 2 and 1, and one row with no order value.
func writeScenario(t *testing.T) string {
	t.Helper()
	return atriltest.TempSongFile(t, atriltest.Header(), [][]string{
		atriltest.Row("A", "X", "3:30", "2"),
		atriltest.Row("A", "Y", "4:10", "1"),
		atriltest.Row("B", "Z", "2:50", ""),
	})
}
