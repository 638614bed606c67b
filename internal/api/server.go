// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/oluyemi-1/plagiarism-backend/internal/engine"
	"github.com/oluyemi-1/plagiarism-backend/internal/model"
	"github.com/oluyemi-1/plagiarism-backend/internal/search"
)

// Searcher is the diagnostic direct-query dependency of the server
type Searcher interface {
	SearchAll(ctx context.Context, query string, maxResults int) ([]model.Candidate, []*model.ProviderError)
}

// Server wires the analyzer and search coordinator into a chi router
type Server struct {
	router         *chi.Mux
	analyzer       *engine.Analyzer
	searcher       Searcher
	maxUploadBytes int64
}

// NewServer builds the HTTP surface over the given analyzer. The searcher
// backs the diagnostic search endpoint and may be nil when live search is
// disabled.
func NewServer(analyzer *engine.Analyzer, searcher Searcher, cfg model.ServerConfig) *Server {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}

	s := &Server{
		router:         r,
		analyzer:       analyzer,
		searcher:       searcher,
		maxUploadBytes: maxUpload,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/search", s.handleSearch)
		r.Get("/formats", s.handleFormats)
	})
}

// Handler returns the underlying router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the listener fails
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, s.router)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

var _ Searcher = (*search.Coordinator)(nil)
