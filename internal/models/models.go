// package models defines the data model for the band songbook service
package models

// Slot identifies one of the fixed instrument slots a song assigns musicians to.
type Slot string

const (
	SlotLeadGuitar   Slot = "lead_guitar"
	SlotRhythmGuitar Slot = "rhythm_guitar"
	SlotBass         Slot = "bass"
	SlotDrums        Slot = "drums"
	SlotVocals       Slot = "vocals"
	SlotKeyboards    Slot = "keyboards"
)

// Slots returns every instrument slot in display order.
func Slots() []Slot {
	return []Slot{SlotLeadGuitar, SlotRhythmGuitar, SlotBass, SlotDrums, SlotVocals, SlotKeyboards}
}

// Song is one parsed row of the source file with its derived fields.
//
// ID is derived from artist and title and is not guaranteed unique; duplicates
// are a data-quality signal surfaced by the consistency report. Assignments
// omits slots with no musician (never an empty string). NextID and PreviousID
// are recomputed wholesale whenever the record set is rebuilt.
type Song struct {
	ID          string          `json:"id"`
	Artist      string          `json:"artist"`
	Title       string          `json:"title"`
	Duration    string          `json:"duration"`
	Order       int             `json:"order"`
	Assignments map[Slot]string `json:"assignments"`
	NextID      string          `json:"next_id,omitempty"`
	PreviousID  string          `json:"previous_id,omitempty"`
}

// Musician returns the musician assigned to the given slot and whether the
// slot is filled.
func (s *Song) Musician(slot Slot) (string, bool) {
	name, ok := s.Assignments[slot]
	return name, ok
}

// Label returns the display label used in dropdown listings.
func (s *Song) Label() string {
	return s.Artist + " - " + s.Title
}

// DropdownEntry is the flattened projection of a song for list-selection UIs.
type DropdownEntry struct {
	ID     string `json:"id"`
	Label  string `json:"display_label"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
}

// SongLink is a compact reference to an adjacent song in the set order.
type SongLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// SongDetail is the full caller-facing view of a single song.
//
// Assignments maps every slot to a musician name or null, so callers always
// see the complete fixed slot set. Next is nil for the last song in order.
type SongDetail struct {
	ID          string           `json:"id"`
	Artist      string           `json:"artist"`
	Title       string           `json:"title"`
	Duration    string           `json:"duration"`
	Order       int              `json:"order"`
	Assignments map[Slot]*string `json:"assignments"`
	Next        *SongLink        `json:"next"`
}

// MusicianSong is one song a musician plays on, with the slots they cover.
type MusicianSong struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Duration string   `json:"duration"`
	Order    int      `json:"order"`
	Slots    []string `json:"slots"`
}

// MusicianDetail lists every song a musician is assigned to, sorted by
// (order, artist, title).
type MusicianDetail struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Songs []MusicianSong `json:"songs"`
}

// Health reports the processor's cache and fallback state.
type Health struct {
	Loaded         bool `json:"loaded"`
	Count          int  `json:"count"`
	CacheValid     bool `json:"cache_valid"`
	ErrorCount     int  `json:"error_count"`
	FallbackActive bool `json:"fallback_active"`
}

// Report is the advisory consistency report over the current snapshot.
//
// It never blocks a load and never mutates the snapshot.
type Report struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	DuplicateIDs    []string `json:"duplicate_ids"`
	DuplicateOrders []int    `json:"duplicate_orders"`
}
