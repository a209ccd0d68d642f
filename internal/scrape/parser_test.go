package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const chartHTML = `<html><body><table>
<tr data-testid="rating-cell-wrapper">
  <td><a data-testid="title"><img src="https://m.media-amazon.com/images/M/poster1._V1_QL75_UX140_CR0,1,140,207_.jpg">1. The Shawshank Redemption</a></td>
  <td><span data-testid="rating">9.3</span></td>
  <td><span data-testid="year">1994</span></td>
</tr>
<tr data-testid="rating-cell-wrapper">
  <td><a>2. The Godfather</a></td>
  <td><span>some text</span><span>9.2</span></td>
  <td><span>1972 · 2h 55m</span></td>
</tr>
<tr data-testid="rating-cell-wrapper">
  <td><a data-testid="title">3. The Dark Knight</a></td>
</tr>
</table></body></html>`

func TestParseChartExtractsRows(t *testing.T) {
	t.Parallel()

	movies := ParseChart([]byte(chartHTML), 0)
	require.Len(t, movies, 3)

	first := movies[0]
	require.Equal(t, "The Shawshank Redemption", first.Title)
	require.Equal(t, "9.3", first.Rating)
	require.Equal(t, "1994", first.Year)
	require.Equal(t,
		"https://m.media-amazon.com/images/M/poster1._V1_UX182_CR0,0,182,268_AL_.jpg",
		first.PosterURL)

	second := movies[1]
	require.Equal(t, "The Godfather", second.Title)
	require.Equal(t, "9.2", second.Rating)
	require.Equal(t, "1972", second.Year)
	require.Empty(t, second.PosterURL)
}

func TestParseChartMissingFieldsAreEmptyStrings(t *testing.T) {
	t.Parallel()

	movies := ParseChart([]byte(chartHTML), 0)
	third := movies[2]
	require.Equal(t, "The Dark Knight", third.Title)
	require.Empty(t, third.Rating)
	require.Empty(t, third.Year)
	require.Empty(t, third.PosterURL)
}

func TestParseChartHonorsLimit(t *testing.T) {
	t.Parallel()

	movies := ParseChart([]byte(chartHTML), 2)
	require.Len(t, movies, 2)
}

func TestParseChartUnparseableBody(t *testing.T) {
	t.Parallel()

	if got := ParseChart([]byte("not html at all"), 10); len(got) != 0 {
		t.Fatalf("expected no movies, got %+v", got)
	}
	if got := ParseChart(nil, 10); len(got) != 0 {
		t.Fatalf("expected no movies for empty body, got %+v", got)
	}
}

func TestParseChartSkipsTitlelessRows(t *testing.T) {
	t.Parallel()

	html := `<table><tr><td>no link here</td></tr><tr><td><a>Heat</a></td></tr></table>`
	movies := ParseChart([]byte(html), 0)
	require.Len(t, movies, 1)
	require.Equal(t, "Heat", movies[0].Title)
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1. The Godfather": "The Godfather",
		"250. Aladdin":     "Aladdin",
		"No Rank Here":     "No Rank Here",
		"Mr. Smith Goes":   "Mr. Smith Goes",
		"12 Angry Men":     "12 Angry Men",
		"3. 12 Angry Men":  "12 Angry Men",
	}
	for in, want := range cases {
		if got := cleanTitle(in); got != want {
			t.Errorf("cleanTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewritePosterURLPassThrough(t *testing.T) {
	t.Parallel()

	src := "https://example.com/poster.jpg"
	if got := rewritePosterURL(src); got != src {
		t.Fatalf("expected pass-through, got %q", got)
	}
	rewritten := rewritePosterURL("https://example.com/p._V1_SX300.jpg")
	if !strings.HasSuffix(rewritten, "._V1_UX182_CR0,0,182,268_AL_.jpg") {
		t.Fatalf("unexpected rewrite: %q", rewritten)
	}
}
