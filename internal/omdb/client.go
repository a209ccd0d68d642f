// Package omdb implements the movie-information API acquisition pipeline.
package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/moviefeed/moviefeed/internal/metrics"
	"github.com/moviefeed/moviefeed/internal/movie"
)

// Search results are capped to keep API usage inside the free tier.
const maxSearchResults = 5

var errAuthRejected = errors.New("api key rejected")

// Config holds the settings for the OMDb client.
type Config struct {
	BaseURL string
	APIKey  string
	Plot    string
	Timeout time.Duration
	Topic   string
}

// Deps carries the collaborators injected into the Client.
type Deps struct {
	Store      movie.APIStore
	Publisher  movie.Publisher
	Clock      movie.Clock
	IDGen      movie.IDGenerator
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// Client fetches movie details from OMDb, falling back to the curated set
// when the service is unreachable, rejects the key, or has no match.
type Client struct {
	cfg  Config
	deps Deps
	http *http.Client
}

// New builds a Client. Publisher may be nil; publishing is then skipped.
func New(cfg Config, deps Deps) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Plot == "" {
		cfg.Plot = "full"
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	httpClient := deps.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, deps: deps, http: httpClient}
}

// titleDocument is the OMDb response for a single-title request.
type titleDocument struct {
	Title    string `json:"Title"`
	Genre    string `json:"Genre"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchDocument struct {
	Search   []searchEntry `json:"Search"`
	Response string        `json:"Response"`
	Error    string        `json:"Error"`
}

type searchEntry struct {
	Title  string `json:"Title"`
	Type   string `json:"Type"`
	ImdbID string `json:"imdbID"`
}

// fetchOutcome is the tagged result of one live API attempt.
type fetchOutcome struct {
	status movie.FetchStatus
	movies []movie.APIMovie
	err    error
}

// FetchMovie resolves a single title, live first, curated set second. A year
// of 0 means no year filter. The second return value is false only when both
// the live lookup and the curated set miss.
func (c *Client) FetchMovie(ctx context.Context, title string, year int) (movie.APIMovie, bool) {
	m, ok, _ := c.fetchOne(ctx, title, year)
	return m, ok
}

func (c *Client) fetchOne(ctx context.Context, title string, year int) (movie.APIMovie, bool, bool) {
	out := c.fetchLive(ctx, title, year)
	metrics.ObserveAttempt(string(movie.PipelineAPI), "title_lookup", out.status.String())

	switch out.status {
	case movie.FetchSuccess:
		c.deps.Logger.Info("fetched movie from api", zap.String("title", out.movies[0].Title))
		return out.movies[0], true, true
	case movie.FetchEmpty:
		c.deps.Logger.Warn("movie not found on api", zap.String("title", title))
	case movie.FetchFailed:
		c.deps.Logger.Warn("api title lookup failed",
			zap.String("title", title), zap.Error(out.err))
	}

	m, ok := LookupSample(title)
	if ok {
		metrics.ObserveFallback(string(movie.PipelineAPI))
	}
	return m, ok, false
}

func (c *Client) fetchLive(ctx context.Context, title string, year int) fetchOutcome {
	params := url.Values{}
	params.Set("t", title)
	params.Set("type", "movie")
	params.Set("plot", c.cfg.Plot)
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}

	var doc titleDocument
	if err := c.get(ctx, params, &doc); err != nil {
		return fetchOutcome{status: movie.FetchFailed, err: err}
	}
	if doc.Response != "True" {
		return fetchOutcome{status: movie.FetchEmpty, err: fmt.Errorf("omdb: %s", doc.Error)}
	}
	return fetchOutcome{status: movie.FetchSuccess, movies: []movie.APIMovie{normalize(doc)}}
}

// SearchMovies runs a fuzzy search, live first, curated set second. Results
// are capped at maxSearchResults.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) []movie.APIMovie {
	out := c.searchLive(ctx, query, year)
	metrics.ObserveAttempt(string(movie.PipelineAPI), "search", out.status.String())

	if out.status == movie.FetchSuccess {
		c.deps.Logger.Info("api search succeeded",
			zap.String("query", query), zap.Int("results", len(out.movies)))
		return out.movies
	}
	c.deps.Logger.Warn("api search fell back to curated set",
		zap.String("query", query), zap.Error(out.err))

	metrics.ObserveFallback(string(movie.PipelineAPI))
	results := SearchSample(query)
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	return results
}

func (c *Client) searchLive(ctx context.Context, query string, year int) fetchOutcome {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}

	var doc searchDocument
	if err := c.get(ctx, params, &doc); err != nil {
		return fetchOutcome{status: movie.FetchFailed, err: err}
	}
	if doc.Response != "True" || len(doc.Search) == 0 {
		return fetchOutcome{status: movie.FetchEmpty, err: fmt.Errorf("omdb: %s", doc.Error)}
	}

	var movies []movie.APIMovie
	for _, entry := range doc.Search {
		if len(movies) >= maxSearchResults {
			break
		}
		if entry.Type != "movie" {
			continue
		}
		m, err := c.fetchByID(ctx, entry.ImdbID)
		if err != nil {
			c.deps.Logger.Warn("api detail lookup failed",
				zap.String("imdb_id", entry.ImdbID), zap.Error(err))
			continue
		}
		movies = append(movies, m)
	}
	if len(movies) == 0 {
		return fetchOutcome{status: movie.FetchEmpty, err: errors.New("omdb: no usable search results")}
	}
	return fetchOutcome{status: movie.FetchSuccess, movies: movies}
}

func (c *Client) fetchByID(ctx context.Context, imdbID string) (movie.APIMovie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("type", "movie")
	params.Set("plot", c.cfg.Plot)

	var doc titleDocument
	if err := c.get(ctx, params, &doc); err != nil {
		return movie.APIMovie{}, err
	}
	if doc.Response != "True" {
		return movie.APIMovie{}, fmt.Errorf("omdb: %s", doc.Error)
	}
	return normalize(doc), nil
}

// get performs one bounded GET against OMDb and decodes the JSON payload.
// Auth rejection is treated identically to service unavailability.
func (c *Client) get(ctx context.Context, params url.Values, into any) error {
	params.Set("apikey", c.cfg.APIKey)

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build omdb request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("omdb request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errAuthRejected
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("omdb: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("decode omdb response: %w", err)
	}
	return nil
}

// normalize maps one OMDb document to the canonical record. OMDb reports
// absent fields as "N/A"; those become empty strings.
func normalize(doc titleDocument) movie.APIMovie {
	return movie.APIMovie{
		Title:     blankNA(doc.Title),
		Genre:     blankNA(doc.Genre),
		Plot:      blankNA(doc.Plot),
		PosterURL: blankNA(doc.Poster),
	}
}

func blankNA(s string) string {
	if s == "N/A" {
		return ""
	}
	return s
}
