// Package server provides HTTP routing, middleware, and the JSON API for the songbook service.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers method-qualified [http.ServeMux] patterns,
// so method filtering and path variables are handled by the mux.
//
// # JSON API
//
// [API] adapts requests into calls on [songbook.Library] and [live.Store] and encodes
// the returned projections as JSON. The handlers hold no state of their own:
//
//	GET    /api/songs                → dropdown projection
//	GET    /api/songs/{id}           → song detail with next-song link
//	GET    /api/songs/{id}/next      → next-song lookup
//	GET    /api/musicians/{name}     → per-musician song listing
//	GET    /api/health               → cache/fallback status
//	GET    /api/report               → consistency report
//	POST   /api/admin/reload         → force reload
//	POST   /api/admin/errors/clear   → clear recovery state
//	POST   /api/live                 → create live session
//	GET    /api/live/{id}            → session state
//	PUT    /api/live/{id}            → set current song
//	POST   /api/live/{id}/advance    → advance to next song
//	DELETE /api/live/{id}            → end session
//
// Errors map onto statuses by taxonomy: unknown ids are 404, a missing source
// file is 503, source validation failures are 422, bad input is 400. Serving
// fallback data is not an error; callers observe it via /api/health.
package server
