// Package web serves the application forms and the intake API.
package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"application-intake/internal/common/config"
	"application-intake/internal/common/logger"
	"application-intake/internal/sink"
	"application-intake/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFiles embed.FS

// HealthCheck pings one backend for the readiness probe.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the handlers need.
type Deps struct {
	Submissions *submission.Service
	Sinks       sink.Provider
	SinkDriver  string
	Google      config.GoogleConfig
	Company     string
	Checks      map[string]HealthCheck
}

// Server is the HTTP server for the intake forms and API.
type Server struct {
	deps      Deps
	cfg       config.ServerConfig
	logger    logger.Logger
	router    *chi.Mux
	server    *http.Server
	templates *template.Template
}

func NewServer(deps Deps, cfg config.ServerConfig, log logger.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		deps:      deps,
		cfg:       cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "http"}),
		router:    chi.NewRouter(),
		templates: tmpl,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	if s.cfg.WriteTimeout > 0 {
		s.router.Use(middleware.Timeout(config.GetDuration(s.cfg.WriteTimeout)))
	}
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Get("/internship", s.handleInternshipForm)
	s.router.Get("/work-from-home", s.handleWFHForm)

	// Probes
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ready", s.handleReady)
	s.router.Handle("/metrics", promhttp.Handler())

	// Probes and pages are not rate limited.
	rate := s.cfg.RateLimit
	if rate <= 0 {
		rate = 100
	}
	limiter := newRateLimiter(rate, time.Minute)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(limiter.middleware)
		r.Post("/submit-application", s.handleSubmitApplication)
		r.Post("/submit-wfh", s.handleSubmitWFH)
		r.Get("/test-sheets", s.handleTestSheets)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  config.GetDuration(s.cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(s.cfg.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", map[string]interface{}{"addr": s.cfg.Addr()})
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		// inline scripts post the forms as JSON
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
