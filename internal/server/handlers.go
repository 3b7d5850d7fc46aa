package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acortes/atril/internal/live"
	"github.com/acortes/atril/internal/shared"
	"github.com/acortes/atril/internal/songbook"
	"github.com/charmbracelet/log"
)

// API bundles the JSON handlers over the songbook and the live session store.
//
// Handlers are thin adapters: every response shape comes straight from the
// songbook projections or the session store; no state lives here.
type API struct {
	library  *songbook.Library
	sessions *live.Store
	logger   *log.Logger
}

// NewAPI creates the handler set for the given songbook and session store.
func NewAPI(library *songbook.Library, sessions *live.Store, logger *log.Logger) *API {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &API{library: library, sessions: sessions, logger: logger}
}

// Register attaches every API route to the router.
func (a *API) Register(r Router) {
	r.Handle(http.MethodGet, "/api/songs", http.HandlerFunc(a.Songs))
	r.Handle(http.MethodGet, "/api/songs/{id}", http.HandlerFunc(a.SongByID))
	r.Handle(http.MethodGet, "/api/songs/{id}/next", http.HandlerFunc(a.NextSong))
	r.Handle(http.MethodGet, "/api/musicians/{name}", http.HandlerFunc(a.MusicianByName))
	r.Handle(http.MethodGet, "/api/health", http.HandlerFunc(a.HealthStatus))
	r.Handle(http.MethodGet, "/api/report", http.HandlerFunc(a.ConsistencyReport))
	r.Handle(http.MethodPost, "/api/admin/reload", http.HandlerFunc(a.Reload))
	r.Handle(http.MethodPost, "/api/admin/errors/clear", http.HandlerFunc(a.ClearErrors))
	r.Handle(http.MethodPost, "/api/live", http.HandlerFunc(a.CreateSession))
	r.Handle(http.MethodGet, "/api/live/{id}", http.HandlerFunc(a.GetSession))
	r.Handle(http.MethodPut, "/api/live/{id}", http.HandlerFunc(a.SetCurrent))
	r.Handle(http.MethodPost, "/api/live/{id}/advance", http.HandlerFunc(a.AdvanceSession))
	r.Handle(http.MethodDelete, "/api/live/{id}", http.HandlerFunc(a.EndSession))
}

// Songs serves the dropdown projection.
func (a *API) Songs(w http.ResponseWriter, r *http.Request) {
	entries, err := a.library.Dropdown()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, entries)
}

// SongByID serves the full song detail with its next-song link.
func (a *API) SongByID(w http.ResponseWriter, r *http.Request) {
	detail, err := a.library.Song(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, detail)
}

// NextSong serves the song following the given id in set order. The last
// song yields a JSON null body.
func (a *API) NextSong(w http.ResponseWriter, r *http.Request) {
	next, err := a.library.NextSong(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, next)
}

// MusicianByName serves the per-musician song listing.
func (a *API) MusicianByName(w http.ResponseWriter, r *http.Request) {
	detail, err := a.library.Musician(r.PathValue("name"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, detail)
}

// HealthStatus serves the cache and fallback state. Serving fallback data is
// a degraded-but-available condition, visible here rather than as an error.
func (a *API) HealthStatus(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.library.Health())
}

// ConsistencyReport serves the advisory data-quality report.
func (a *API) ConsistencyReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.library.Report()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, report)
}

// Reload forces a rebuild of the snapshot, bypassing the modification-time check.
func (a *API) Reload(w http.ResponseWriter, r *http.Request) {
	if err := a.library.ForceReload(); err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, a.library.Health())
}

// ClearErrors resets the recovery error state.
func (a *API) ClearErrors(w http.ResponseWriter, r *http.Request) {
	a.library.ClearErrors()
	a.writeJSON(w, http.StatusOK, a.library.Health())
}

// CreateSession starts a new live performance session.
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusCreated, a.sessions.Create())
}

// GetSession serves the current selection of a session.
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessions.Get(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}

// SetCurrent updates the session's current song from the request body.
func (a *API) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SongID string `json:"song_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SongID == "" {
		a.writeError(w, shared.ErrInvalidInput)
		return
	}

	session, err := a.sessions.SetCurrent(r.PathValue("id"), body.SongID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}

// AdvanceSession moves the session to its next song.
func (a *API) AdvanceSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.sessions.Advance(r.PathValue("id"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, session)
}

// EndSession removes the session.
func (a *API) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.End(r.PathValue("id")); err != nil {
		a.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses: lookups map to 404,
// a missing source to 503, source validation to 422, invalid input to 400,
// everything else to 500.
func (a *API) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, shared.ErrSongNotFound),
		errors.Is(err, shared.ErrMusicianNotFound),
		errors.Is(err, shared.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrSourceNotFound):
		status = http.StatusServiceUnavailable
	case errors.Is(err, shared.ErrSourceInvalid):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
