package omdb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/moviefeed/moviefeed/internal/metrics"
	"github.com/moviefeed/moviefeed/internal/movie"
)

// Well-known titles fetched by FetchPopularMovies. Hardcoded to avoid
// burning API quota on discovery calls.
var popularTitles = []string{
	"Inception",
	"The Matrix",
	"Forrest Gump",
	"Pulp Fiction",
	"Fight Club",
	"Goodfellas",
	"The Shawshank Redemption",
	"The Godfather",
	"Titanic",
	"Avatar",
}

// FetchAndSaveMultiple resolves each title and replaces the api_movies table
// with whatever was found. Titles that miss both live and curated lookups are
// skipped; when nothing at all resolves the table is left untouched and the
// count is 0.
func (c *Client) FetchAndSaveMultiple(ctx context.Context, titles []string) (int, error) {
	var (
		movies   []movie.APIMovie
		liveHits int
	)
	c.deps.Logger.Info("fetching movies", zap.Int("count", len(titles)))

	for _, title := range titles {
		m, ok, live := c.fetchOne(ctx, title, 0)
		if !ok || m.Title == "" {
			continue
		}
		if live {
			liveHits++
		}
		movies = append(movies, m)
	}

	if len(movies) == 0 {
		c.deps.Logger.Warn("no movies were fetched")
		return 0, nil
	}

	rows, err := c.deps.Store.ReplaceAPI(ctx, movies)
	if err != nil {
		return 0, fmt.Errorf("replace api movies: %w", err)
	}
	metrics.ObserveRowsReplaced("api_movies", rows)

	source := sourceFallback(liveHits)
	c.deps.Logger.Info("api movies saved",
		zap.Int("rows", rows),
		zap.String("source", source))

	c.publishRefresh(ctx, rows, source)
	return rows, nil
}

// FetchPopularMovies fetches the fixed popular list and saves it.
func (c *Client) FetchPopularMovies(ctx context.Context) (int, error) {
	return c.FetchAndSaveMultiple(ctx, popularTitles)
}

func sourceFallback(liveHits int) string {
	if liveHits > 0 {
		return "omdb"
	}
	return "fallback"
}

func (c *Client) publishRefresh(ctx context.Context, rows int, source string) {
	if c.deps.Publisher == nil {
		return
	}
	runID := ""
	if c.deps.IDGen != nil {
		if id, err := c.deps.IDGen.NewID(); err == nil {
			runID = id
		}
	}
	completed := time.Now().UTC()
	if c.deps.Clock != nil {
		completed = c.deps.Clock.Now()
	}
	event := movie.RefreshEvent{
		RunID:       runID,
		Pipeline:    movie.PipelineAPI,
		Rows:        rows,
		Source:      source,
		CompletedAt: completed,
	}
	if _, err := c.deps.Publisher.Publish(ctx, c.cfg.Topic, event); err != nil {
		c.deps.Logger.Warn("publish refresh event failed", zap.Error(err))
	}
}
