package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/moviefeed/moviefeed/internal/metrics"
	"github.com/moviefeed/moviefeed/internal/movie"
)

// Strategy names used in logs, metrics and refresh events.
const (
	strategyHTTP     = "http"
	strategyHeadless = "headless"
	sourceFallback   = "fallback"
)

// Config holds the settings for the scrape pipeline. UseHeadless reflects the
// browser capability decided at wiring time.
type Config struct {
	ChartURL      string
	Timeout       time.Duration
	ArchivePrefix string
	Topic         string
	UseHeadless   bool
}

// Deps carries the collaborators injected into the Scraper.
type Deps struct {
	Probe     movie.PageFetcher
	Headless  movie.PageFetcher
	Detector  *Detector
	Store     movie.ScrapedStore
	Archive   movie.BlobStore
	Hasher    movie.Hasher
	Publisher movie.Publisher
	Clock     movie.Clock
	IDGen     movie.IDGenerator
	Logger    *zap.Logger
}

// Scraper orchestrates the strategy chain for the chart scrape pipeline:
// lightweight HTTP fetch, then (when available) a browser fetch, then the
// curated fallback set.
type Scraper struct {
	cfg  Config
	deps Deps
}

// New builds a Scraper. Headless, Archive and Publisher may be nil; the
// corresponding steps are skipped.
func New(cfg Config, deps Deps) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Scraper{cfg: cfg, deps: deps}
}

// outcome is the tagged result of one strategy attempt. The orchestrator
// inspects status to decide whether to advance to the next strategy.
type outcome struct {
	status movie.FetchStatus
	movies []movie.ScrapedMovie
	resp   movie.PageResponse
	err    error
}

// ScrapeMovies runs the strategy chain and always returns a non-empty batch:
// live records when a strategy succeeds, the curated set otherwise.
func (s *Scraper) ScrapeMovies(ctx context.Context, limit int, useHeadless bool) []movie.ScrapedMovie {
	movies, _ := s.acquire(ctx, limit, useHeadless)
	return movies
}

func (s *Scraper) acquire(ctx context.Context, limit int, useHeadless bool) ([]movie.ScrapedMovie, string) {
	probe := s.attempt(ctx, s.deps.Probe, strategyHTTP, limit)
	if probe.status == movie.FetchSuccess {
		s.archiveSnapshot(ctx, strategyHTTP, probe.resp.Body)
		return probe.movies, strategyHTTP
	}

	if useHeadless && s.deps.Headless != nil && s.shouldPromote(probe) {
		rendered := s.attempt(ctx, s.deps.Headless, strategyHeadless, limit)
		if rendered.status == movie.FetchSuccess {
			s.archiveSnapshot(ctx, strategyHeadless, rendered.resp.Body)
			return rendered.movies, strategyHeadless
		}
	}

	metrics.ObserveFallback(string(movie.PipelineScrape))
	s.deps.Logger.Info("serving curated fallback movies", zap.Int("limit", limit))
	return Fallback(limit), sourceFallback
}

// attempt runs one strategy to completion and classifies the result. Ordinary
// network or availability failures never surface as errors to the caller.
func (s *Scraper) attempt(ctx context.Context, fetcher movie.PageFetcher, strategy string, limit int) outcome {
	attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	out := s.classify(attemptCtx, fetcher, strategy, limit)
	metrics.ObserveAttempt(string(movie.PipelineScrape), strategy, out.status.String())

	switch out.status {
	case movie.FetchSuccess:
		s.deps.Logger.Info("scrape strategy succeeded",
			zap.String("strategy", strategy),
			zap.Int("records", len(out.movies)),
			zap.Duration("duration", out.resp.Duration))
	case movie.FetchEmpty:
		s.deps.Logger.Warn("scrape strategy returned no records",
			zap.String("strategy", strategy),
			zap.Int("status_code", out.resp.StatusCode))
	case movie.FetchFailed:
		s.deps.Logger.Warn("scrape strategy failed",
			zap.String("strategy", strategy),
			zap.Error(out.err))
	}
	return out
}

func (s *Scraper) classify(ctx context.Context, fetcher movie.PageFetcher, strategy string, limit int) outcome {
	resp, err := fetcher.Fetch(ctx, movie.PageRequest{
		URL: s.cfg.ChartURL,
		Headers: http.Header{
			"Accept-Language": {"en-US,en;q=0.9"},
		},
	})
	if err != nil {
		return outcome{status: movie.FetchFailed, err: fmt.Errorf("%s fetch: %w", strategy, err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return outcome{
			status: movie.FetchFailed,
			resp:   resp,
			err:    fmt.Errorf("%s fetch: unexpected status %d", strategy, resp.StatusCode),
		}
	}
	movies := ParseChart(resp.Body, limit)
	if len(movies) == 0 {
		return outcome{status: movie.FetchEmpty, resp: resp}
	}
	return outcome{status: movie.FetchSuccess, movies: movies, resp: resp}
}

// shouldPromote decides whether the probe result justifies the heavier
// browser strategy. Network failures always qualify; an empty parse only
// when the page looks script-rendered.
func (s *Scraper) shouldPromote(probe outcome) bool {
	if probe.status == movie.FetchFailed {
		return true
	}
	if s.deps.Detector == nil {
		return true
	}
	return s.deps.Detector.ShouldPromote(probe.resp)
}

// ScrapeAndSave chains acquisition with the replace-all write and reports the
// number of rows committed.
func (s *Scraper) ScrapeAndSave(ctx context.Context, limit int) (int, error) {
	movies, source := s.acquire(ctx, limit, s.cfg.UseHeadless)

	rows, err := s.deps.Store.ReplaceScraped(ctx, movies)
	if err != nil {
		return 0, fmt.Errorf("replace scraped movies: %w", err)
	}
	metrics.ObserveRowsReplaced("scraped_movies", rows)
	s.deps.Logger.Info("scraped movies saved",
		zap.Int("rows", rows),
		zap.String("source", source))

	s.publishRefresh(ctx, rows, source)
	return rows, nil
}

func (s *Scraper) archiveSnapshot(ctx context.Context, strategy string, raw []byte) {
	if s.deps.Archive == nil || len(raw) == 0 {
		return
	}
	digest := ""
	if s.deps.Hasher != nil {
		if h, err := s.deps.Hasher.Hash(raw); err == nil {
			digest = h
		}
	}
	path := fmt.Sprintf("%s/%s-%s.html", s.cfg.ArchivePrefix, strategy, digest)
	uri, err := s.deps.Archive.PutObject(ctx, path, "text/html; charset=utf-8", raw)
	if err != nil {
		s.deps.Logger.Warn("archive snapshot failed", zap.Error(err))
		return
	}
	s.deps.Logger.Debug("archived chart snapshot", zap.String("uri", uri))
}

func (s *Scraper) publishRefresh(ctx context.Context, rows int, source string) {
	if s.deps.Publisher == nil {
		return
	}
	runID := ""
	if s.deps.IDGen != nil {
		if id, err := s.deps.IDGen.NewID(); err == nil {
			runID = id
		}
	}
	completed := time.Now().UTC()
	if s.deps.Clock != nil {
		completed = s.deps.Clock.Now()
	}
	event := movie.RefreshEvent{
		RunID:       runID,
		Pipeline:    movie.PipelineScrape,
		Rows:        rows,
		Source:      source,
		CompletedAt: completed,
	}
	if _, err := s.deps.Publisher.Publish(ctx, s.cfg.Topic, event); err != nil {
		s.deps.Logger.Warn("publish refresh event failed", zap.Error(err))
	}
}
