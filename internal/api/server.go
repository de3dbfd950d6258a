// SPDX-License-Identifier: MIT

// Package api provides the HTTP surface of the roadyaml service.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BlackRoad-OS/roadyaml/internal/api/middleware"
	"github.com/BlackRoad-OS/roadyaml/internal/config"
	"github.com/BlackRoad-OS/roadyaml/internal/health"
	"github.com/BlackRoad-OS/roadyaml/internal/schema"
)

// Server hosts the codec and schema endpoints.
type Server struct {
	cfg       config.Config
	registry  *schema.Registry // nil when no schema directory is configured
	health    *health.Manager
	startTime time.Time
}

// New creates an API server. registry may be nil when the instance serves
// no schemas.
func New(cfg config.Config, registry *schema.Registry, healthManager *health.Manager) *Server {
	return &Server{
		cfg:       cfg,
		registry:  registry,
		health:    healthManager,
		startTime: time.Now(),
	}
}

// Handler builds the full router with the canonical middleware stack.
func (s *Server) Handler() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableCORS:     true,
		AllowedOrigins: s.cfg.AllowedOrigins,

		EnableSecurityHeaders: true,
		CSP:                   middleware.DefaultCSP,

		EnableMetrics:  true,
		TracingService: s.tracingService(),
		EnableLogging:  true,
	})

	s.registerPublicRoutes(r)
	s.registerCodecRoutes(r)

	return r
}

func (s *Server) tracingService() string {
	if !s.cfg.Trace.Enabled {
		return ""
	}
	return "roadyaml-api"
}

func (s *Server) registerPublicRoutes(r chi.Router) {
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/openapi.yaml", s.handleOpenAPI)

	r.Get("/", redirectTo("/api/status", http.StatusTemporaryRedirect))
}

func (s *Server) registerCodecRoutes(r chi.Router) {
	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.MaxBytes(s.cfg.MaxBodyBytes))
		if s.cfg.RateLimitRPM > 0 {
			v1.Use(middleware.APIRateLimit(s.cfg.RateLimitRPM))
		}

		v1.Post("/parse", s.handleParse)
		v1.Post("/format", s.handleFormat)
		v1.Post("/dump", s.handleDump)
		v1.Post("/merge", s.handleMerge)

		v1.Get("/schemas", s.handleSchemaList)
		v1.Get("/schemas/{name}", s.handleSchemaGet)
		v1.Post("/schemas/{name}/validate", s.handleSchemaValidate)
	})
}

func redirectTo(path string, code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, code)
	}
}
