// package atriltest contains shared testing utilities
package atriltest

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Header returns the canonical source file header.
func Header() []string {
	return []string{
		"Artist", "Title", "Lead Guitar", "Rhythm Guitar",
		"Bass", "Drums", "Vocals", "Keyboards", "Duration", "Order",
	}
}

// Row builds a data row for the canonical header with every slot assigned.
func Row(artist, title, duration, order string) []string {
	return []string{artist, title, "Marta", "Pablo", "Luis", "Sergio", "Ana", "Clara", duration, order}
}

// WriteSongFile writes a CSV file with the given header and rows, failing the
// test on error.
func WriteSongFile(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create song file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("failed to flush song file: %v", err)
	}
}

// TempSongFile writes a CSV file into a fresh temp directory and returns its path.
func TempSongFile(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "songs.csv")
	WriteSongFile(t, path, header, rows)
	return path
}

// Touch bumps the file's modification time by one second past its current
// value, so mtime-based staleness checks observe a change regardless of
// filesystem timestamp granularity.
func Touch(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	next := info.ModTime().Add(time.Second)
	if err := os.Chtimes(path, next, next); err != nil {
		t.Fatalf("failed to change mtime of %s: %v", path, err)
	}
}
