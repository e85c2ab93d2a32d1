// Package server provides the HTTP front end for courtfinder: HTML pages,
// form endpoints and a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/courtfinder/internal/config"
	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/internal/redirect"
	"github.com/hyperjump/courtfinder/internal/search"
	"github.com/hyperjump/courtfinder/internal/view"
	"go.uber.org/zap"
)

// Courts is the read side of the court catalogue.
type Courts interface {
	Courts() []models.Court
	Court(slug string) (models.CourtDetail, error)
}

// Server is the HTTP server for courtfinder.
type Server struct {
	engine   *search.Engine
	courts   Courts
	renderer *view.Renderer
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	courts Courts,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer, err := view.NewRenderer(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return &Server{
		engine:   engine,
		courts:   courts,
		renderer: renderer,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Router builds the handler tree. Every route is mounted under the
// configured base path.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	if s.config.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}
	r.Use(middleware.Compress(5))
	r.Use(s.limitBody)

	r.NotFound(s.handleNotFound)

	if base := strings.TrimSuffix(s.config.BasePath, "/"); base != "" {
		r.Route(base, s.routes)
	} else {
		s.routes(r)
	}
	return r
}

func (s *Server) routes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/results", s.handleResults)
	r.Get("/find-a-court-or-tribunal", s.handleStart)
	r.Get("/find-a-court-or-tribunal-backup", s.handleOptions)
	r.Get("/find-a-court-or-tribunal-search", s.handleNameSearch)
	r.Get("/courts/{slug}", s.handleCourt)
	r.Get("/find-a-court-or-tribunal/court-details/{slug}", s.handleLegacyCourt)
	r.Handle("/assets/*", http.StripPrefix(s.path("/assets/"), view.Assets()))

	r.Post("/api/search", s.handleForm(redirect.HomeSearch))
	r.Post("/api/court-search", s.handleForm(redirect.NameSearch))
	r.Post("/api/court-option", s.handleForm(redirect.CourtOption))

	r.Group(func(r chi.Router) {
		if len(s.config.CORSOrigins) > 0 {
			r.Use(newCORSHandler(s.config.CORSOrigins))
			// preflight is answered by the CORS handler before this runs
			r.Options("/api/v1/*", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		}
		r.Get("/api/v1/courts", s.handleAPISearch)
		r.Get("/api/v1/courts/{slug}", s.handleAPICourt)
		r.Get("/health", s.handleHealth)
	})
}

// Start starts the HTTP server and blocks until it stops. It returns nil
// after a graceful Stop.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.logger.Info("Starting server",
		zap.String("addr", s.server.Addr),
		zap.String("base_path", s.config.BasePath),
	)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// path prefixes an absolute service path with the base path.
func (s *Server) path(p string) string {
	return redirect.JoinBase(s.config.BasePath, p)
}
