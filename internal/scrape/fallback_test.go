package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Fallback(0)
	second := Fallback(0)
	require.Len(t, first, 10)
	require.Equal(t, first, second)
}

func TestFallbackFieldsAreComplete(t *testing.T) {
	t.Parallel()

	for _, m := range Fallback(0) {
		require.NotEmpty(t, m.Title)
		require.NotEmpty(t, m.Rating)
		require.NotEmpty(t, m.Year)
		require.NotEmpty(t, m.PosterURL)
	}
}

func TestFallbackHonorsLimit(t *testing.T) {
	t.Parallel()

	require.Len(t, Fallback(3), 3)
	require.Len(t, Fallback(100), 10)
	require.Len(t, Fallback(-1), 10)
}

func TestFallbackReturnsCopy(t *testing.T) {
	t.Parallel()

	batch := Fallback(0)
	batch[0].Title = "mutated"
	require.Equal(t, "The Shawshank Redemption", Fallback(0)[0].Title)
}
