package scrape

import "github.com/moviefeed/moviefeed/internal/movie"

// Curated records served when every live strategy is exhausted. Order is
// fixed; callers receive a fresh copy on every call.
var fallbackMovies = []movie.ScrapedMovie{
	{
		Title:     "The Shawshank Redemption",
		Rating:    "9.3",
		Year:      "1994",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/8/81/ShawshankRedemptionMoviePoster.jpg",
	},
	{
		Title:     "The Godfather",
		Rating:    "9.2",
		Year:      "1972",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/1/1c/Godfather_1972_poster.png",
	},
	{
		Title:     "The Godfather Part II",
		Rating:    "9.0",
		Year:      "1974",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/0/3f/Godfather2-1974.jpg",
	},
	{
		Title:     "The Dark Knight",
		Rating:    "9.0",
		Year:      "2008",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/1/1a/The_Dark_Knight_%282008_film%29.jpg",
	},
	{
		Title:     "Pulp Fiction",
		Rating:    "8.9",
		Year:      "1994",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/8/8b/Pulp_Fiction_%282.jpg",
	},
	{
		Title:     "Forrest Gump",
		Rating:    "8.8",
		Year:      "1994",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/6/67/Forrest_Gump_poster.jpg",
	},
	{
		Title:     "Inception",
		Rating:    "8.8",
		Year:      "2010",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/2/2e/Inception_%282010%29_theatrical_poster.jpg",
	},
	{
		Title:     "Fight Club",
		Rating:    "8.8",
		Year:      "1999",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/f/fc/Fight_Club_poster.jpg",
	},
	{
		Title:     "The Matrix",
		Rating:    "8.7",
		Year:      "1999",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/c/c1/The_Matrix_Poster.jpg",
	},
	{
		Title:     "Goodfellas",
		Rating:    "8.7",
		Year:      "1990",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/0/0b/Goodfellas.jpg",
	},
}

// Fallback returns the curated scrape-pipeline dataset, capped at limit.
// A limit <= 0 returns the full set.
func Fallback(limit int) []movie.ScrapedMovie {
	n := len(fallbackMovies)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]movie.ScrapedMovie, n)
	copy(out, fallbackMovies[:n])
	return out
}
