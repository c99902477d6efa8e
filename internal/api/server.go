package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/sumtree/internal/config"
	"github.com/dgallion1/sumtree/internal/pipeline"
	"github.com/dgallion1/sumtree/internal/summarize"
)

// Server is the HTTP API for the summary-tree service.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	client       *summarize.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, client *summarize.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		client:       client,
		log:          log,
		cfg:          cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.ServerAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.ServerAPIKey))
		}

		r.Post("/api/process", s.handleProcess)
		r.Get("/api/documents/{name}", s.handleDocument)
		r.Get("/api/documents/{name}/levels/{level}", s.handleLevel)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
