// Package adapthttp is the driving HTTP adapter that exposes the
// application store to presentation clients.
package adapthttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"weighttrack/internal/app"
)

// Server routes requests to the application store.
type Server struct {
	store  *app.Store
	webDir string
}

// New creates a Server wired to the given store. webDir is the directory
// the client bundle is served from; empty disables static serving.
func New(store *app.Store, webDir string) *Server {
	return &Server{store: store, webDir: webDir}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(withNoCache)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})

		r.Get("/entries", s.handleListEntries)
		r.Post("/entries", s.handleAddEntry)
		r.Delete("/entries", s.handleClearEntries)
		r.Get("/entries/range", s.handleEntriesRange)
		r.Patch("/entries/{id}", s.handleUpdateEntry)
		r.Delete("/entries/{id}", s.handleDeleteEntry)

		r.Get("/averages", s.handleAverages)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
	})

	if s.webDir != "" {
		r.NotFound(spaFromDisk(s.webDir).ServeHTTP)
	}
	return r
}
