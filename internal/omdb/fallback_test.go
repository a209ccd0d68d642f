package omdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFallbackIsDeterministic(t *testing.T) {
	t.Parallel()

	first := Fallback()
	second := Fallback()
	require.Len(t, first, 10)
	require.Equal(t, first, second)
}

func TestFallbackRecordsAreComplete(t *testing.T) {
	t.Parallel()

	for _, m := range Fallback() {
		require.NotEmpty(t, m.Title)
		require.NotEmpty(t, m.Genre)
		require.NotEmpty(t, m.Plot)
		require.NotEmpty(t, m.PosterURL)
	}
}

func TestFallbackCopyIsolation(t *testing.T) {
	t.Parallel()

	first := Fallback()
	first[0].Title = "mutated"
	require.Equal(t, "Inception", Fallback()[0].Title)
}

func TestLookupSample(t *testing.T) {
	t.Parallel()

	m, ok := LookupSample("inception")
	require.True(t, ok)
	require.Equal(t, "Inception", m.Title)
	require.Equal(t, "Action, Sci-Fi, Thriller", m.Genre)

	_, ok = LookupSample("Incept")
	require.False(t, ok)

	_, ok = LookupSample("Some Unknown Movie")
	require.False(t, ok)
}

func TestSearchSample(t *testing.T) {
	t.Parallel()

	results := SearchSample("batman")
	require.NotEmpty(t, results)
	for _, m := range results {
		require.Contains(t, m.Title, "Batman")
	}

	require.Empty(t, SearchSample("zzz no such movie"))
	require.Len(t, SearchSample(""), 10)
}
