// package server contains middleware & handlers for the songbook web service
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// The service uses it for request logging and rate limiting.
type Middleware func(http.Handler) http.Handler

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and serve the request tree.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}
