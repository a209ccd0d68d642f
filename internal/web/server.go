// Package web exposes the HTTP interface for the moviefeed service.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/moviefeed/moviefeed/internal/config"
	"github.com/moviefeed/moviefeed/internal/metrics"
	"github.com/moviefeed/moviefeed/internal/movie"
	"github.com/moviefeed/moviefeed/internal/omdb"
	"github.com/moviefeed/moviefeed/internal/scrape"
)

// Server wires HTTP handlers to the two acquisition pipelines and the store.
type Server struct {
	router  chi.Router
	scraped movie.ScrapedStore
	api     movie.APIStore
	scraper *scrape.Scraper
	omdb    *omdb.Client
	cfg     config.Config
	logger  *zap.Logger

	// One refresh per pipeline at a time; reads stay concurrent.
	scrapeMu sync.Mutex
	apiMu    sync.Mutex
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	scraped movie.ScrapedStore,
	api movie.APIStore,
	scraper *scrape.Scraper,
	omdbClient *omdb.Client,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		scraped: scraped,
		api:     api,
		scraper: scraper,
		omdb:    omdbClient,
		cfg:     cfg,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/", s.index)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		if cfg.Auth.Enabled {
			r.Use(apiKeyMiddleware(cfg.Auth.APIKey))
		}
		r.Route("/movies", func(r chi.Router) {
			r.Get("/scraped", s.listScraped)
			r.Get("/api", s.listAPI)
			r.Get("/lookup", s.lookupMovie)
			r.Get("/search", s.searchMovies)
		})
		r.Route("/refresh", func(r chi.Router) {
			r.Post("/scrape", s.refreshScrape)
			r.Post("/api", s.refreshAPI)
		})
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.scraped.ListScraped(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) listScraped(w http.ResponseWriter, r *http.Request) {
	movies, err := s.scraped.ListScraped(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read scraped movies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(movies), "movies": movies})
}

func (s *Server) listAPI(w http.ResponseWriter, r *http.Request) {
	movies, err := s.api.ListAPI(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read api movies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(movies), "movies": movies})
}

func (s *Server) lookupMovie(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	year := intQuery(r, "year")
	m, ok := s.omdb.FetchMovie(r.Context(), title, year)
	if !ok {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) searchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	year := intQuery(r, "year")
	movies := s.omdb.SearchMovies(r.Context(), query, year)
	writeJSON(w, http.StatusOK, map[string]any{"count": len(movies), "movies": movies})
}

func (s *Server) refreshScrape(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit")
	if limit <= 0 {
		limit = s.cfg.Scrape.Limit
	}

	s.scrapeMu.Lock()
	defer s.scrapeMu.Unlock()

	rows, err := s.scraper.ScrapeAndSave(r.Context(), limit)
	if err != nil {
		// Storage failure is the one error class shown to callers.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rows": rows})
}

type refreshAPIRequest struct {
	Titles []string `json:"titles"`
}

func (s *Server) refreshAPI(w http.ResponseWriter, r *http.Request) {
	var req refreshAPIRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
	}

	s.apiMu.Lock()
	defer s.apiMu.Unlock()

	var (
		rows int
		err  error
	)
	if len(req.Titles) > 0 {
		rows, err = s.omdb.FetchAndSaveMultiple(r.Context(), req.Titles)
	} else {
		rows, err = s.omdb.FetchPopularMovies(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rows": rows})
}

func intQuery(r *http.Request, key string) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
