package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"uk_numcheck/internal/domain"
	"uk_numcheck/pkg/errcodes"
	"uk_numcheck/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone
			r.Route("/validate", func(r chi.Router) {
				r.Get("/", handler(s.getV1Validate))
				r.Post("/batch", handler(s.postV1ValidateBatch))
			})
			r.Route("/dataset", func(r chi.Router) {
				r.Get("/", handler(s.getV1Dataset))
				r.Post("/refresh", handler(s.postV1DatasetRefresh))
			})
		})
	})
}

// handler adapts error-returning handlers to http.HandlerFunc. Reads before
// the first rule set is published answer 503, everything else goes through
// the shared error reply.
func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			if errors.Is(err, domain.ErrDatasetUnavailable) {
				reply.Unavailable(r.Context(), w, errcodes.DatasetUnavailable, "Numbering plan dataset not loaded yet")
				return
			}

			reply.Error(r.Context(), w, err)
		}
	}
}
