package songbook

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
	"github.com/charmbracelet/log"
)

// Snapshot is the complete in-memory record set plus derived indexes at a
// point in time. Published snapshots are never mutated; a reload builds and
// publishes a fresh one wholesale.
type Snapshot struct {
	Songs    []*models.Song           // canonical sequence, sorted by order
	ByID     map[string]*models.Song  // first record wins on duplicate ids
	ByOrder  map[int]*models.Song     // first record wins on duplicate orders
	Dropdown []models.DropdownEntry   // pre-sorted by (order, artist, title)
	Hash     string                   // content hash over (id, artist, title, order)
	LoadedAt time.Time
}

// Options configures a [Library].
type Options struct {
	Path              string        // path to the CSV source file
	Logger            *log.Logger   // defaults to a stderr logger
	FallbackThreshold int           // consecutive failures before placeholder data, defaults to 3
	RetryAttempts     int           // load attempts per reload, defaults to 1
	RetryDelay        time.Duration // base delay between attempts
}

// Library is the explicit handle over the cached song set.
//
// It owns all mutable cache state: the current snapshot, the source file
// modification time it corresponds to, and the recovery error counter.
// Construct one per source file and pass it to callers; there is no ambient
// singleton.
type Library struct {
	path          string
	logger        *log.Logger
	threshold     int
	retryAttempts int
	retryDelay    time.Duration

	mu             sync.Mutex
	snap           *Snapshot
	modTime        time.Time
	loaded         bool
	fallbackActive bool
	errorCount     int
	parses         int // number of full source parses, used by tests
}

// New creates a Library for the source file named by opts.Path.
func New(opts Options) *Library {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.FallbackThreshold <= 0 {
		opts.FallbackThreshold = 3
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 1
	}

	return &Library{
		path:          opts.Path,
		logger:        opts.Logger,
		threshold:     opts.FallbackThreshold,
		retryAttempts: opts.RetryAttempts,
		retryDelay:    opts.RetryDelay,
	}
}

// Snapshot returns the current snapshot, reloading first when nothing is
// loaded yet or the source file's modification time no longer matches.
//
// On load failure the recovery rules of [Library.reloadLocked] apply: a prior
// snapshot is served as-is, placeholder data appears only past the failure
// threshold, and otherwise the typed load error is returned.
func (l *Library) Snapshot() (*Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.ensureLocked(); err != nil {
		return nil, err
	}
	return l.snap, nil
}

// ForceReload rebuilds the snapshot from the source file regardless of the
// cached modification time.
func (l *Library) ForceReload() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reloadLocked()
}

// Health reports the cache state without triggering a load, so callers can
// observe a degraded state instead of racing a reload.
func (l *Library) Health() models.Health {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	if l.snap != nil {
		count = len(l.snap.Songs)
	}

	return models.Health{
		Loaded:         l.loaded,
		Count:          count,
		CacheValid:     l.loaded && !l.fallbackActive && !l.staleLocked(),
		ErrorCount:     l.errorCount,
		FallbackActive: l.fallbackActive,
	}
}

// ensureLocked reloads when the cache is unloaded or stale. Fallback data is
// treated as always stale so a recovered source file replaces it on the next
// read.
func (l *Library) ensureLocked() error {
	if l.loaded && !l.fallbackActive && !l.staleLocked() {
		return nil
	}
	return l.reloadLocked()
}

// staleLocked compares the source file's current modification time with the
// one recorded at load. A missing file counts as stale.
func (l *Library) staleLocked() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		return true
	}
	return !info.ModTime().Equal(l.modTime)
}

// reloadLocked runs the full Parser → Assigner → Builder pipeline, retrying
// per the configured attempt count, and publishes the result. Failures are
// routed through the recovery layer.
func (l *Library) reloadLocked() error {
	var songs []*models.Song
	var modTime time.Time

	err := shared.Retry(l.retryAttempts, l.retryDelay, func() error {
		s, mt, err := l.readSource()
		if err != nil {
			return err
		}
		songs, modTime = s, mt
		return nil
	})
	if err != nil {
		return l.recoverLocked(err)
	}

	l.publishLocked(songs, modTime)
	return nil
}

// readSource opens and parses the source file, returning the order-sorted,
// linked record set and the file's modification time.
func (l *Library) readSource() ([]*models.Song, time.Time, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, l.path)
		}
		return nil, time.Time{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to stat source file: %w", err)
	}

	l.parses++
	rows, err := parseSource(f, l.logger)
	if err != nil {
		return nil, time.Time{}, err
	}

	songs := assignOrders(rows, l.logger)
	linkSongs(songs)

	return songs, info.ModTime(), nil
}

// publishLocked swaps in a freshly built snapshot and resets recovery state.
func (l *Library) publishLocked(songs []*models.Song, modTime time.Time) {
	snap := buildSnapshot(songs)

	l.snap = snap
	l.modTime = modTime
	l.loaded = true
	l.fallbackActive = false
	l.errorCount = 0

	l.logger.Info("songbook loaded", "count", len(songs), "hash", snap.Hash)
}

// buildSnapshot derives the by-id and by-order indexes, the dropdown
// projection, and the content hash for a record set.
func buildSnapshot(songs []*models.Song) *Snapshot {
	byID := make(map[string]*models.Song, len(songs))
	byOrder := make(map[int]*models.Song, len(songs))
	dropdown := make([]models.DropdownEntry, 0, len(songs))

	for _, song := range songs {
		if _, ok := byID[song.ID]; !ok {
			byID[song.ID] = song
		}
		if _, ok := byOrder[song.Order]; !ok {
			byOrder[song.Order] = song
		}
		dropdown = append(dropdown, models.DropdownEntry{
			ID:     song.ID,
			Label:  song.Label(),
			Artist: song.Artist,
			Title:  song.Title,
			Order:  song.Order,
		})
	}

	sort.SliceStable(dropdown, func(i, j int) bool {
		a, b := dropdown[i], dropdown[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Title < b.Title
	})

	return &Snapshot{
		Songs:    songs,
		ByID:     byID,
		ByOrder:  byOrder,
		Dropdown: dropdown,
		Hash:     contentHash(songs),
		LoadedAt: time.Now(),
	}
}

// contentHash hashes the essential fields of every record so external
// consumers can cheaply compare snapshots for content equality.
func contentHash(songs []*models.Song) string {
	var b strings.Builder
	for _, song := range songs {
		b.WriteString(song.ID)
		b.WriteByte('|')
		b.WriteString(song.Artist)
		b.WriteByte('|')
		b.WriteString(song.Title)
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(song.Order))
		b.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
