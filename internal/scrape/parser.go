// Package scrape implements the chart-scrape acquisition pipeline.
package scrape

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/moviefeed/moviefeed/internal/movie"
)

var (
	yearPattern   = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	ratingPattern = regexp.MustCompile(`^\d\.\d$|^10\.0$`)
)

// ParseChart extracts up to limit movie records from the fetched chart HTML.
// Parsing never fails: unreadable documents yield an empty slice and rows
// with missing sub-elements get empty-string fields.
func ParseChart(body []byte, limit int) []movie.ScrapedMovie {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	rows := doc.Find(`tr[data-testid="rating-cell-wrapper"]`)
	if rows.Length() == 0 {
		rows = doc.Find("li.ipc-metadata-list-summary-item")
	}
	if rows.Length() == 0 {
		rows = doc.Find("tr")
	}

	movies := make([]movie.ScrapedMovie, 0, rows.Length())
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if limit > 0 && len(movies) >= limit {
			return false
		}
		m := extractRow(row)
		if m.Title != "" {
			movies = append(movies, m)
		}
		return true
	})
	return movies
}

func extractRow(row *goquery.Selection) movie.ScrapedMovie {
	var m movie.ScrapedMovie

	link := row.Find(`a[data-testid="title"]`).First()
	if link.Length() == 0 {
		link = row.Find("a").First()
	}
	m.Title = cleanTitle(strings.TrimSpace(link.Text()))

	img := row.Find("img").First()
	if src, ok := img.Attr("src"); ok {
		m.PosterURL = rewritePosterURL(src)
	}

	ratingSpan := row.Find(`span[data-testid="rating"]`).First()
	if ratingSpan.Length() > 0 {
		m.Rating = strings.TrimSpace(ratingSpan.Text())
	} else {
		row.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			text := strings.TrimSpace(span.Text())
			if ratingPattern.MatchString(text) {
				m.Rating = text
				return false
			}
			return true
		})
	}

	yearSpan := row.Find(`span[data-testid="year"]`).First()
	if yearSpan.Length() > 0 {
		m.Year = strings.TrimSpace(yearSpan.Text())
	} else {
		m.Year = yearPattern.FindString(row.Text())
	}

	return m
}

// cleanTitle drops the "1. " rank prefix the chart prepends to titles.
func cleanTitle(title string) string {
	if i := strings.Index(title, ". "); i > 0 && i <= 3 {
		rank := title[:i]
		if strings.Trim(rank, "0123456789") == "" {
			return strings.TrimSpace(title[i+2:])
		}
	}
	return title
}

// rewritePosterURL swaps the placeholder-sized `._V1_` suffix for a fixed
// width variant so the front end gets a usable poster.
func rewritePosterURL(src string) string {
	if prefix, _, found := strings.Cut(src, "._V1_"); found {
		return prefix + "._V1_UX182_CR0,0,182,268_AL_.jpg"
	}
	return src
}
