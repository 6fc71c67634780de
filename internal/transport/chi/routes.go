package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount attaches the retrieval API routes under /api/juris.
func (s *Server) Mount(r chi.Router) {
	r.Route("/api/juris", func(r chi.Router) {
		r.Get("/search", s.Search)
		r.Get("/suggestions", s.Suggestions)
		r.Get("/health", s.HealthCheck)
	})
}

// Handler builds a standalone handler with the routes mounted, for tests
// and embedding.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Mount(r)
	return r
}
