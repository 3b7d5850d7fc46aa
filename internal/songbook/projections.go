package songbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
)

// Dropdown returns the flattened list projection, pre-sorted by
// (order, artist, title).
func (l *Library) Dropdown() ([]models.DropdownEntry, error) {
	snap, err := l.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Dropdown, nil
}

// Song returns the full detail view for the song with the given id,
// including its next-song link. Returns [shared.ErrSongNotFound] for an
// unknown id.
func (l *Library) Song(id string) (*models.SongDetail, error) {
	snap, err := l.Snapshot()
	if err != nil {
		return nil, err
	}

	song, ok := snap.ByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	return songDetail(snap, song), nil
}

// NextSong returns the song following the given id in set order. The last
// song yields a nil link; an unknown id yields [shared.ErrSongNotFound].
func (l *Library) NextSong(id string) (*models.SongLink, error) {
	snap, err := l.Snapshot()
	if err != nil {
		return nil, err
	}

	if _, ok := snap.ByID[id]; !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	next, ok := nextAfter(snap.Songs, id)
	if !ok {
		return nil, nil
	}
	return songLink(next), nil
}

// Musician returns every song the named musician is assigned to, with the
// slots they cover, sorted by (order, artist, title). Name matching is
// case-insensitive. Returns [shared.ErrMusicianNotFound] when the name
// appears in no assignment.
func (l *Library) Musician(name string) (*models.MusicianDetail, error) {
	snap, err := l.Snapshot()
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil, fmt.Errorf("%w: empty musician name", shared.ErrInvalidInput)
	}

	type match struct {
		song  *models.Song
		slots []string
	}
	var matches []match
	canonical := ""

	for _, song := range snap.Songs {
		var slots []string
		for _, slot := range models.Slots() {
			if assigned, ok := song.Musician(slot); ok && strings.EqualFold(strings.TrimSpace(assigned), strings.TrimSpace(name)) {
				slots = append(slots, string(slot))
				if canonical == "" {
					canonical = strings.TrimSpace(assigned)
				}
			}
		}
		if len(slots) > 0 {
			matches = append(matches, match{song: song, slots: slots})
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrMusicianNotFound, name)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].song, matches[j].song
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Title < b.Title
	})

	detail := &models.MusicianDetail{
		ID:   slugify(canonical),
		Name: canonical,
	}
	for _, m := range matches {
		detail.Songs = append(detail.Songs, models.MusicianSong{
			ID:       m.song.ID,
			Title:    m.song.Title,
			Duration: m.song.Duration,
			Order:    m.song.Order,
			Slots:    m.slots,
		})
	}

	return detail, nil
}

// songDetail flattens a song into its caller-facing shape: the complete slot
// map with nulls for unfilled slots, plus the next-song link.
func songDetail(snap *Snapshot, song *models.Song) *models.SongDetail {
	assignments := make(map[models.Slot]*string, len(models.Slots()))
	for _, slot := range models.Slots() {
		if name, ok := song.Musician(slot); ok {
			n := name
			assignments[slot] = &n
		} else {
			assignments[slot] = nil
		}
	}

	detail := &models.SongDetail{
		ID:          song.ID,
		Artist:      song.Artist,
		Title:       song.Title,
		Duration:    song.Duration,
		Order:       song.Order,
		Assignments: assignments,
	}

	if song.NextID != "" {
		if next, ok := snap.ByID[song.NextID]; ok {
			detail.Next = songLink(next)
		}
	}

	return detail
}

func songLink(song *models.Song) *models.SongLink {
	return &models.SongLink{
		ID:    song.ID,
		Label: song.Label(),
		Order: song.Order,
	}
}
