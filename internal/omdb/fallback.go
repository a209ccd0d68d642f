package omdb

import (
	"strings"

	"github.com/moviefeed/moviefeed/internal/movie"
)

// Curated records served when the live API is unreachable or rejects the
// key. Order is fixed; lookups and searches mirror the live contract so
// callers need no live-vs-fallback branching.
var sampleMovies = []movie.APIMovie{
	{
		Title:     "Inception",
		Genre:     "Action, Sci-Fi, Thriller",
		Plot:      "A skilled thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/2/2e/Inception_%282010%29_theatrical_poster.jpg",
	},
	{
		Title:     "The Dark Knight",
		Genre:     "Action, Crime, Drama",
		Plot:      "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest tests.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/1/1a/The_Dark_Knight_%282008_film%29.jpg",
	},
	{
		Title:     "Batman Begins",
		Genre:     "Action, Crime, Drama",
		Plot:      "After witnessing his parents' death, Bruce Wayne trains with the League of Shadows and returns to Gotham to fight its criminal underworld as Batman.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/1/1d/Batman_begins_poster.jpg",
	},
	{
		Title:     "The Matrix",
		Genre:     "Action, Sci-Fi",
		Plot:      "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/c/c1/The_Matrix_Poster.jpg",
	},
	{
		Title:     "Forrest Gump",
		Genre:     "Drama, Romance",
		Plot:      "The presidencies of Kennedy and Johnson, the Vietnam War, the Watergate scandal and other historical events unfold from the perspective of an Alabama man with an IQ of 75.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/6/67/Forrest_Gump_poster.jpg",
	},
	{
		Title:     "Pulp Fiction",
		Genre:     "Crime, Drama",
		Plot:      "The lives of two mob hitmen, a boxer, a gangster and his wife, and a pair of diner bandits intertwine in four tales of violence and redemption.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/8/8b/Pulp_Fiction_%282.jpg",
	},
	{
		Title:     "Fight Club",
		Genre:     "Drama",
		Plot:      "An insomniac office worker and a devil-may-care soapmaker form an underground fight club that evolves into much more.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/f/fc/Fight_Club_poster.jpg",
	},
	{
		Title:     "Goodfellas",
		Genre:     "Crime, Drama",
		Plot:      "The story of Henry Hill and his life in the mafia, covering his relationship with his wife Karen Hill and his mob partners, Tommy DeVito and Jimmy Conway.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/0/0b/Goodfellas.jpg",
	},
	{
		Title:     "The Shawshank Redemption",
		Genre:     "Drama",
		Plot:      "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/8/81/ShawshankRedemptionMoviePoster.jpg",
	},
	{
		Title:     "The Godfather",
		Genre:     "Crime, Drama",
		Plot:      "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his youngest and most reluctant son.",
		PosterURL: "https://upload.wikimedia.org/wikipedia/en/1/1c/Godfather_1972_poster.png",
	},
}

// Fallback returns the full curated API-pipeline dataset.
func Fallback() []movie.APIMovie {
	out := make([]movie.APIMovie, len(sampleMovies))
	copy(out, sampleMovies)
	return out
}

// LookupSample finds a curated record by exact title, case-insensitively.
// The second return value is false when no title matches.
func LookupSample(title string) (movie.APIMovie, bool) {
	for _, m := range sampleMovies {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return movie.APIMovie{}, false
}

// SearchSample returns curated records whose title contains the query,
// case-insensitively, in curated order.
func SearchSample(query string) []movie.APIMovie {
	q := strings.ToLower(query)
	var out []movie.APIMovie
	for _, m := range sampleMovies {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}
