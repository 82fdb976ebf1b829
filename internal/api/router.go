package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/Bandplan/internal/metrics"
	"github.com/MikeSquared-Agency/Bandplan/internal/store"
)

// NewRouter serves read-only access to stored evaluation runs.
func NewRouter(s store.Store, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	runs := NewRunsHandler(s, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", runs.List)
		r.Get("/runs/{id}", runs.Get)
		r.Get("/runs/{id}/scores", runs.Scores)
		r.Get("/runs/{id}/pareto", runs.Pareto)
	})

	return r
}

func NewMetricsRouter(c *metrics.Collector) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", c.Handler())
	return r
}
