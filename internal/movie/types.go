// Package movie defines core types shared across the acquisition pipelines.
package movie

import (
	"net/http"
	"time"
)

// Pipeline identifies which acquisition pipeline produced a record or event.
type Pipeline string

// Pipeline values used in metrics labels and refresh events.
const (
	PipelineScrape Pipeline = "scrape"
	PipelineAPI    Pipeline = "api"
)

// ScrapedMovie is the canonical record produced by the scrape pipeline.
// Every field is a plain string; absent data is the empty string, never a
// missing field, so the display layer needs no null checks.
type ScrapedMovie struct {
	Title     string `json:"title"`
	Rating    string `json:"rating"`
	Year      string `json:"year"`
	PosterURL string `json:"poster_url"`
}

// APIMovie is the canonical record produced by the API pipeline.
type APIMovie struct {
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Plot      string `json:"plot"`
	PosterURL string `json:"poster_url"`
}

// FetchStatus is the outcome of one strategy attempt. The orchestrator
// inspects it to decide whether to advance to the next strategy.
type FetchStatus int

// Strategy outcomes.
const (
	FetchSuccess FetchStatus = iota
	FetchEmpty
	FetchFailed
)

// String returns the metrics/log label for the status.
func (s FetchStatus) String() string {
	switch s {
	case FetchSuccess:
		return "success"
	case FetchEmpty:
		return "empty"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PageRequest captures everything needed to fetch one page.
type PageRequest struct {
	URL     string
	Headers http.Header
}

// PageResponse is the result returned by a PageFetcher implementation.
type PageResponse struct {
	URL          string
	StatusCode   int
	Headers      http.Header
	Body         []byte
	Duration     time.Duration
	UsedHeadless bool
}

// RefreshEvent is published after a pipeline successfully replaces its table.
type RefreshEvent struct {
	RunID       string    `json:"run_id"`
	Pipeline    Pipeline  `json:"pipeline"`
	Rows        int       `json:"rows"`
	Source      string    `json:"source"`
	CompletedAt time.Time `json:"completed_at"`
}
