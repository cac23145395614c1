// Package api exposes the outline extractor over HTTP for callers that
// prefer uploading single PDFs to running the batch tool.
package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	ext    pipeline.Extractor
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. Authentication is
// enforced only when an API key is configured.
func NewServer(ext pipeline.Extractor, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		ext: ext,
		log: log,
		cfg: cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}
		r.Post("/api/outline", s.handleOutline)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
