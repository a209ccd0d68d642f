package headless

import (
	"context"
	"errors"

	"github.com/moviefeed/moviefeed/internal/movie"
)

// Noop implements movie.PageFetcher but always returns an error to indicate
// that headless browsing is not available in the current configuration.
type Noop struct{}

// NewNoop creates a new Noop fetcher.
func NewNoop() *Noop {
	return &Noop{}
}

// Fetch returns an error since this is a stub implementation.
func (Noop) Fetch(_ context.Context, _ movie.PageRequest) (movie.PageResponse, error) {
	return movie.PageResponse{}, errors.New("headless fetcher not configured")
}
