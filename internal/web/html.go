package web

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/moviefeed/moviefeed/internal/movie"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>moviefeed</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
img { height: 60px; }
</style>
</head>
<body>
<h1>moviefeed</h1>

<h2>Top chart ({{len .Scraped}})</h2>
<table>
<tr><th>Title</th><th>Rating</th><th>Year</th><th>Poster</th></tr>
{{range .Scraped}}
<tr>
<td>{{.Title}}</td>
<td>{{.Rating}}</td>
<td>{{.Year}}</td>
<td>{{if .PosterURL}}<img src="{{.PosterURL}}" alt="{{.Title}}">{{end}}</td>
</tr>
{{end}}
</table>

<h2>Movie details ({{len .API}})</h2>
<table>
<tr><th>Title</th><th>Genre</th><th>Plot</th><th>Poster</th></tr>
{{range .API}}
<tr>
<td>{{.Title}}</td>
<td>{{.Genre}}</td>
<td>{{.Plot}}</td>
<td>{{if .PosterURL}}<img src="{{.PosterURL}}" alt="{{.Title}}">{{end}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

type indexData struct {
	Scraped []movie.ScrapedMovie
	API     []movie.APIMovie
}

// index renders both tables in full; the display layer reads, never writes.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	scraped, err := s.scraped.ListScraped(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read scraped movies")
		return
	}
	apiMovies, err := s.api.ListAPI(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read api movies")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{Scraped: scraped, API: apiMovies}); err != nil {
		s.logger.Error("render index failed", zap.Error(err))
	}
}
