package scrape

import (
	"bytes"
	"net/http"

	"github.com/moviefeed/moviefeed/internal/movie"
)

// Detector decides whether a probe response is script-rendered enough to
// warrant the browser strategy. The decision is rule based: markers left by
// client-side frameworks, or a body that is mostly script tags.
type Detector struct {
	BodyLengthThreshold int
}

// NewDetector creates a detector. A zero threshold selects the default.
func NewDetector(threshold int) *Detector {
	if threshold == 0 {
		threshold = 2048
	}
	return &Detector{BodyLengthThreshold: threshold}
}

var scriptAppMarkers = [][]byte{
	[]byte("__NEXT_DATA__"),
	[]byte("__next"),
	[]byte(`id="root"`),
	[]byte(`id="app"`),
	[]byte("data-reactroot"),
}

// ShouldPromote reports whether the probe content justifies a headless fetch.
func (d *Detector) ShouldPromote(resp movie.PageResponse) bool {
	if resp.StatusCode != http.StatusOK {
		return false
	}
	if len(resp.Body) == 0 {
		return true
	}
	if len(resp.Body) < d.BodyLengthThreshold && scriptHeavy(resp.Body) {
		return true
	}
	for _, marker := range scriptAppMarkers {
		if bytes.Contains(resp.Body, marker) {
			return true
		}
	}
	return false
}

// scriptHeavy is a cheap proxy for script coverage: one script tag per
// kilobyte of markup or better.
func scriptHeavy(body []byte) bool {
	tags := bytes.Count(bytes.ToLower(body), []byte("<script"))
	if tags == 0 {
		return false
	}
	return tags >= len(body)/1024+1
}
