package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/acortes/atril/internal/atriltest"
	"github.com/acortes/atril/internal/live"
	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
	"github.com/acortes/atril/internal/songbook"
)

// setupAPI builds a router over a real songbook backed by a temp CSV file.
func setupAPI(t *testing.T) *BasicRouter {
	t.Helper()

	path := atriltest.TempSongFile(t, atriltest.Header(), [][]string{
		atriltest.Row("A", "X", "3:30", "1"),
		atriltest.Row("B", "Y", "4:00", "2"),
	})

	logger := shared.NewLogger(io.Discard)
	library := songbook.New(songbook.Options{Path: path, Logger: logger})
	sessions := live.NewStore(library, logger)

	router := NewBasicRouter()
	NewAPI(library, sessions, logger).Register(router)
	return router
}

func do(t *testing.T, router *BasicRouter, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSongEndpoints(t *testing.T) {
	router := setupAPI(t)

	t.Run("ListSongs", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/songs", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		entries := decode[[]models.DropdownEntry](t, rec)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID != "a-x" || entries[0].Label != "A - X" {
			t.Errorf("unexpected first entry %+v", entries[0])
		}
	})

	t.Run("SongDetail", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/songs/a-x", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		detail := decode[models.SongDetail](t, rec)
		if detail.ID != "a-x" || detail.Order != 1 {
			t.Errorf("unexpected detail %+v", detail)
		}
		if detail.Next == nil || detail.Next.ID != "b-y" {
			t.Errorf("expected next link b-y, got %+v", detail.Next)
		}
	})

	t.Run("SongNotFound", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/songs/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("NextSong", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/songs/a-x/next", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		link := decode[*models.SongLink](t, rec)
		if link == nil || link.ID != "b-y" {
			t.Errorf("expected b-y, got %+v", link)
		}
	})

	t.Run("NextOfLastIsNull", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/songs/b-y/next", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if strings.TrimSpace(rec.Body.String()) != "null" {
			t.Errorf("expected null body, got %q", rec.Body.String())
		}
	})

	t.Run("Musician", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/musicians/Ana", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		detail := decode[models.MusicianDetail](t, rec)
		if detail.Name != "Ana" || len(detail.Songs) != 2 {
			t.Errorf("unexpected musician detail %+v", detail)
		}
	})

	t.Run("MusicianNotFound", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/musicians/Nadie", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})
}

func TestStatusEndpoints(t *testing.T) {
	router := setupAPI(t)

	t.Run("Health", func(t *testing.T) {
		// Prime the cache through a read first.
		do(t, router, http.MethodGet, "/api/songs", "")

		rec := do(t, router, http.MethodGet, "/api/health", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		health := decode[models.Health](t, rec)
		if !health.Loaded || !health.CacheValid || health.Count != 2 {
			t.Errorf("unexpected health %+v", health)
		}
	})

	t.Run("Report", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/api/report", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		report := decode[models.Report](t, rec)
		if !report.Valid {
			t.Errorf("expected valid report, got %+v", report)
		}
	})

	t.Run("Reload", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/admin/reload", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("ClearErrors", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/admin/errors/clear", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		health := decode[models.Health](t, rec)
		if health.ErrorCount != 0 {
			t.Errorf("expected cleared errors, got %+v", health)
		}
	})
}

func TestLiveEndpoints(t *testing.T) {
	router := setupAPI(t)

	create := do(t, router, http.MethodPost, "/api/live", "")
	if create.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", create.Code)
	}
	session := decode[live.Session](t, create)
	if session.ID == "" {
		t.Fatal("session should have an id")
	}

	t.Run("SetCurrent", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/live/"+session.ID, `{"song_id":"a-x"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		updated := decode[live.Session](t, rec)
		if updated.Current == nil || updated.Current.ID != "a-x" {
			t.Errorf("unexpected current %+v", updated.Current)
		}
		if updated.Next == nil || updated.Next.ID != "b-y" {
			t.Errorf("unexpected next %+v", updated.Next)
		}
	})

	t.Run("Advance", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/api/live/"+session.ID+"/advance", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		updated := decode[live.Session](t, rec)
		if updated.Current == nil || updated.Current.ID != "b-y" {
			t.Errorf("unexpected current after advance %+v", updated.Current)
		}
	})

	t.Run("InvalidBody", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/live/"+session.ID, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("UnknownSong", func(t *testing.T) {
		rec := do(t, router, http.MethodPut, "/api/live/"+session.ID, `{"song_id":"nope"}`)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("End", func(t *testing.T) {
		rec := do(t, router, http.MethodDelete, "/api/live/"+session.ID, "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}

		rec = do(t, router, http.MethodGet, "/api/live/"+session.ID, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404 after end, got %d", rec.Code)
		}
	})
}

func TestMissingSourceIsServiceUnavailable(t *testing.T) {
	logger := shared.NewLogger(io.Discard)
	library := songbook.New(songbook.Options{Path: "/nonexistent/songs.csv", Logger: logger, FallbackThreshold: 99})
	sessions := live.NewStore(library, logger)

	router := NewBasicRouter()
	NewAPI(library, sessions, logger).Register(router)

	rec := do(t, router, http.MethodGet, "/api/songs", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for missing source, got %d", rec.Code)
	}
}
