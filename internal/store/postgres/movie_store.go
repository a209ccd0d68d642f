// Package postgres provides Postgres-backed persistence for movie records.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviefeed/moviefeed/internal/movie"
)

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// pgxPool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it.
type pgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// MovieStore owns all mutation of the scraped_movies and api_movies tables.
// Every replace runs as a single transaction: a failure partway through
// leaves the table in its prior state.
type MovieStore struct {
	pool pgxPool
}

// New creates a Postgres-backed MovieStore using the provided config.
func New(ctx context.Context, cfg Config) (*MovieStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &MovieStore{pool: pool}, nil
}

// NewWithPool constructs a store from an existing pool (primarily for testing).
func NewWithPool(pool pgxPool) (*MovieStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &MovieStore{pool: pool}, nil
}

// Close releases the underlying pool resources.
func (s *MovieStore) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// ReplaceScraped clears scraped_movies and inserts the batch in input order.
func (s *MovieStore) ReplaceScraped(ctx context.Context, movies []movie.ScrapedMovie) (int, error) {
	err := s.replace(ctx, "scraped_movies", len(movies), func(tx pgx.Tx, i int) error {
		m := movies[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO scraped_movies (title, rating, year, poster_url) VALUES ($1, $2, $3, $4)`,
			m.Title, m.Rating, m.Year, m.PosterURL)
		return err
	})
	if err != nil {
		return 0, err
	}
	return len(movies), nil
}

// ReplaceAPI clears api_movies and inserts the batch in input order.
func (s *MovieStore) ReplaceAPI(ctx context.Context, movies []movie.APIMovie) (int, error) {
	err := s.replace(ctx, "api_movies", len(movies), func(tx pgx.Tx, i int) error {
		m := movies[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO api_movies (title, genre, plot, poster_url) VALUES ($1, $2, $3, $4)`,
			m.Title, m.Genre, m.Plot, m.PosterURL)
		return err
	})
	if err != nil {
		return 0, err
	}
	return len(movies), nil
}

// replace performs the delete-then-insert sequence inside one transaction.
func (s *MovieStore) replace(ctx context.Context, table string, count int, insert func(tx pgx.Tx, i int) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for i := 0; i < count; i++ {
		if err := insert(tx, i); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}

// ListScraped returns all scraped rows in insertion order.
func (s *MovieStore) ListScraped(ctx context.Context) ([]movie.ScrapedMovie, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT title, rating, year, poster_url FROM scraped_movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list scraped movies: %w", err)
	}
	defer rows.Close()

	var movies []movie.ScrapedMovie
	for rows.Next() {
		var m movie.ScrapedMovie
		if err := rows.Scan(&m.Title, &m.Rating, &m.Year, &m.PosterURL); err != nil {
			return nil, fmt.Errorf("scan scraped movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scraped movies: %w", err)
	}
	return movies, nil
}

// ListAPI returns all API rows in insertion order.
func (s *MovieStore) ListAPI(ctx context.Context) ([]movie.APIMovie, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT title, genre, plot, poster_url FROM api_movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list api movies: %w", err)
	}
	defer rows.Close()

	var movies []movie.APIMovie
	for rows.Next() {
		var m movie.APIMovie
		if err := rows.Scan(&m.Title, &m.Genre, &m.Plot, &m.PosterURL); err != nil {
			return nil, fmt.Errorf("scan api movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api movies: %w", err)
	}
	return movies, nil
}
