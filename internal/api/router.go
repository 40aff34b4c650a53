package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tenant-api/internal/config"
	"tenant-api/internal/middleware"
)

// NewRouter builds the full route tree. Reads are open; mutating routes sit
// behind the API-key gate.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timing(h.logger))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-KEY", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	requireKey := middleware.RequireAPIKey(cfg.APIKey)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.With(requireKey).Post("/", h.CreateUser)
		r.With(requireKey).Put("/{id}", h.UpdateUser)
		r.With(requireKey).Delete("/{id}", h.DeleteUser)
	})

	r.Route("/api/groups", func(r chi.Router) {
		r.Get("/", h.ListGroups)
		r.Get("/{id}", h.GetGroup)
		r.With(requireKey).Post("/", h.CreateGroup)
		r.With(requireKey).Put("/{id}", h.UpdateGroup)
		r.With(requireKey).Delete("/{id}", h.DeleteGroup)
	})

	return r
}
