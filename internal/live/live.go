// package live tracks the current/next song selection for live performance sessions
package live

import (
	"fmt"
	"sync"
	"time"

	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
	"github.com/charmbracelet/log"
)

// Session is the shared selection state of one live performance.
//
// Next is derived from the songbook whenever Current changes; it is never set
// directly by callers.
type Session struct {
	ID        string           `json:"id"`
	Current   *models.SongLink `json:"current"`
	Next      *models.SongLink `json:"next"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SongSource resolves song ids against the current songbook snapshot.
// Implemented by [songbook.Library].
type SongSource interface {
	Song(id string) (*models.SongDetail, error)
	NextSong(id string) (*models.SongLink, error)
}

// Store holds live sessions in memory. Sessions survive until explicitly
// ended; there is no persistence and no timer-based expiry.
type Store struct {
	songs  SongSource
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore creates an empty session store backed by the given song source.
func NewStore(songs SongSource, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		songs:    songs,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Create starts a new session with no selection.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &Session{
		ID:        shared.GenerateID(),
		UpdatedAt: time.Now(),
	}
	s.sessions[session.ID] = session

	s.logger.Info("live session created", "session", session.ID)
	return copySession(session)
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	return copySession(session), nil
}

// SetCurrent updates the session's current song and re-resolves the next
// link against the songbook. An unknown song id fails without touching the
// session.
func (s *Store) SetCurrent(sessionID, songID string) (*Session, error) {
	detail, err := s.songs.Song(songID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, sessionID)
	}

	session.Current = &models.SongLink{
		ID:    detail.ID,
		Label: detail.Artist + " - " + detail.Title,
		Order: detail.Order,
	}
	session.Next = detail.Next
	session.UpdatedAt = time.Now()

	s.logger.Info("live selection updated", "session", sessionID, "song", songID)
	return copySession(session), nil
}

// Advance moves the session to its next song, re-deriving the new next link.
// Advancing past the last song clears the selection.
func (s *Store) Advance(sessionID string) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, sessionID)
	}
	next := session.Next
	s.mu.Unlock()

	if next == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		session.Current = nil
		session.Next = nil
		session.UpdatedAt = time.Now()
		return copySession(session), nil
	}

	return s.SetCurrent(sessionID, next.ID)
}

// End removes the session.
func (s *Store) End(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}
	delete(s.sessions, id)

	s.logger.Info("live session ended", "session", id)
	return nil
}

// Count returns the number of active sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func copySession(session *Session) *Session {
	out := *session
	if session.Current != nil {
		current := *session.Current
		out.Current = &current
	}
	if session.Next != nil {
		next := *session.Next
		out.Next = &next
	}
	return &out
}
