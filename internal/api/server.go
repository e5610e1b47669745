package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/pdfcascade/internal/config"
	"github.com/dgallion1/pdfcascade/internal/extract"
	"github.com/dgallion1/pdfcascade/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for pdfcascade.
type Server struct {
	router    chi.Router
	extractor pipeline.Extractor
	pool      *pipeline.Pool
	stats     *extract.Stats
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server. stats may be nil.
func NewServer(ex pipeline.Extractor, pool *pipeline.Pool, stats *extract.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		extractor: ex,
		pool:      pool,
		stats:     stats,
		log:       log,
		cfg:       cfg,
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
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/extract/batch", s.handleExtractBatch)
		r.Post("/api/jobs", s.handleSubmitJob)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats/methods", s.handleMethodStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	depth, jobs := 0, 0
	if s.pool != nil {
		depth = s.pool.QueueDepth()
		jobs = s.pool.JobCount()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": depth,
		"jobs":        jobs,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
