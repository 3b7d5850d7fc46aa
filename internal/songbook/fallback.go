package songbook

import (
	"time"

	"github.com/acortes/atril/internal/models"
)

// Sentinel values for the synthesized placeholder record served when no real
// data is available.
const (
	PlaceholderArtist = "Unknown Artist"
	PlaceholderTitle  = "No songs available"
)

// recoverLocked applies the recovery rules after a failed load attempt:
//
//  1. The persistent error counter is incremented.
//  2. A prior non-empty snapshot is served as-is; this outranks fallback data.
//  3. Past the failure threshold a single placeholder record is synthesized
//     and served until explicitly cleared.
//  4. Otherwise the typed load error propagates to the caller.
func (l *Library) recoverLocked(err error) error {
	l.errorCount++

	if l.snap != nil && len(l.snap.Songs) > 0 {
		l.logger.Warn("load failed, serving cached snapshot",
			"error", err, "consecutive_errors", l.errorCount)
		return nil
	}

	if l.errorCount >= l.threshold {
		l.logger.Error("load failed past threshold, serving placeholder data",
			"error", err, "consecutive_errors", l.errorCount)
		l.snap = placeholderSnapshot()
		l.loaded = true
		l.fallbackActive = true
		l.modTime = time.Time{}
		return nil
	}

	l.logger.Error("load failed", "error", err, "consecutive_errors", l.errorCount)
	return err
}

// ClearErrors resets the error counter and discards a synthesized fallback
// snapshot. A valid cached snapshot is left untouched.
func (l *Library) ClearErrors() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.errorCount = 0
	if l.fallbackActive {
		l.snap = nil
		l.loaded = false
		l.fallbackActive = false
		l.modTime = time.Time{}
	}
}

// placeholderSnapshot builds the single-record fallback set.
func placeholderSnapshot() *Snapshot {
	song := &models.Song{
		ID:          DeriveID(PlaceholderArtist, PlaceholderTitle),
		Artist:      PlaceholderArtist,
		Title:       PlaceholderTitle,
		Duration:    DefaultDuration,
		Order:       1,
		Assignments: map[models.Slot]string{},
	}
	return buildSnapshot([]*models.Song{song})
}
