package movie

import (
	"context"
	"time"
)

// ScrapedStore persists scrape-pipeline records.
type ScrapedStore interface {
	// ReplaceScraped clears the scraped_movies table and inserts the batch
	// in order, all inside one transaction. Returns the number of rows
	// inserted.
	ReplaceScraped(ctx context.Context, movies []ScrapedMovie) (int, error)
	ListScraped(ctx context.Context) ([]ScrapedMovie, error)
}

// APIStore persists API-pipeline records.
type APIStore interface {
	ReplaceAPI(ctx context.Context, movies []APIMovie) (int, error)
	ListAPI(ctx context.Context) ([]APIMovie, error)
}

// PageFetcher fetches a URL and returns the body plus metadata.
type PageFetcher interface {
	Fetch(ctx context.Context, request PageRequest) (PageResponse, error)
}

// BlobStore archives raw payloads and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// Publisher pushes refresh events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Hasher computes digests for archived payloads.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces refresh run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
