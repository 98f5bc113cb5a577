package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the service router: common middleware, GET /health and the
// users routes under /users.
func NewRouter(users *UsersHandler, logger *slog.Logger, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/users", users.RegisterRoutes)
	return r
}
