/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     zerolog request logging (RequestLogger)
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. Metrics:    Prometheus request counters (when enabled)
  5. CORS:       Cross-origin requests for the calculator frontend

ROUTE GROUPS:
  /api/calculate        Stateless calculation
  /api/workspace/*      The process-wide workspace
  /api/rates/*          Rate tables
  /api/scenarios/*      Sample weeks
  /metrics              Prometheus (when enabled)

SECURITY NOTE:
  No authentication. The server is meant to run locally next to the
  calculator frontend; there is one workspace per process.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/wagecalc/serve.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures NewRouter.
type Options struct {
	AllowedOrigins []string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:8080"}
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(h.Log))
	r.Use(middleware.Recoverer)
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/calculate", h.Calculate)

		r.Route("/workspace", func(r chi.Router) {
			r.Get("/", h.GetWorkspace)
			r.Delete("/", h.ResetWorkspace)
			r.Put("/settings", h.UpdateSettings)
			r.Get("/earnings", h.GetEarnings)
			r.Post("/export", h.ExportWorkspace)
			r.Delete("/days", h.ClearDays)
			r.Post("/days/{date}/toggle", h.ToggleDay)
			r.Put("/days/{date}", h.UpdateDay)
		})

		r.Route("/rates", func(r chi.Router) {
			r.Get("/default", h.DefaultRates)
			r.Get("/legacy", h.LegacyRates)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics.Handler())
	}

	return r
}
