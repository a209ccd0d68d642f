package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moviefeed/moviefeed/internal/movie"
)

func TestDetectorEmptyBody(t *testing.T) {
	t.Parallel()

	d := NewDetector(100)
	require.True(t, d.ShouldPromote(movie.PageResponse{StatusCode: 200}))
}

func TestDetectorFrameworkMarkers(t *testing.T) {
	t.Parallel()

	d := NewDetector(100)
	resp := movie.PageResponse{
		StatusCode: 200,
		Body:       []byte(`<div id="__next"></div>`),
	}
	require.True(t, d.ShouldPromote(resp))
}

func TestDetectorScriptHeavyBody(t *testing.T) {
	t.Parallel()

	d := NewDetector(1000)
	resp := movie.PageResponse{
		StatusCode: 200,
		Body:       []byte(`<html><script>var a=1;</script><p>t</p></html>`),
	}
	require.True(t, d.ShouldPromote(resp))
}

func TestDetectorPlainDocument(t *testing.T) {
	t.Parallel()

	d := NewDetector(10)
	resp := movie.PageResponse{
		StatusCode: 200,
		Body:       []byte(`<html><body><table><tr><td>static rows</td></tr></table></body></html>`),
	}
	require.False(t, d.ShouldPromote(resp))
}

func TestDetectorIgnoresNon200(t *testing.T) {
	t.Parallel()

	d := NewDetector(100)
	resp := movie.PageResponse{StatusCode: 404, Body: []byte("not found")}
	require.False(t, d.ShouldPromote(resp))
}
