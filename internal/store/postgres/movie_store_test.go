package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/moviefeed/moviefeed/internal/movie"
)

func newMockStore(t *testing.T) (*MovieStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	store, err := NewWithPool(mock)
	require.NoError(t, err)
	return store, mock
}

func TestReplaceScrapedClearsThenInserts(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	movies := []movie.ScrapedMovie{
		{Title: "The Shawshank Redemption", Rating: "9.3", Year: "1994", PosterURL: "poster1"},
		{Title: "The Godfather", Rating: "9.2", Year: "1972", PosterURL: "poster2"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM scraped_movies").
		WillReturnResult(pgxmock.NewResult("DELETE", 10))
	for _, m := range movies {
		mock.ExpectExec("INSERT INTO scraped_movies").
			WithArgs(m.Title, m.Rating, m.Year, m.PosterURL).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	rows, err := store.ReplaceScraped(context.Background(), movies)
	require.NoError(t, err)
	require.Equal(t, 2, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceScrapedEmptyBatchStillClears(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM scraped_movies").
		WillReturnResult(pgxmock.NewResult("DELETE", 10))
	mock.ExpectCommit()

	rows, err := store.ReplaceScraped(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceScrapedInsertFailureRollsBack(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	movies := []movie.ScrapedMovie{{Title: "Heat", Rating: "8.3", Year: "1995"}}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM scraped_movies").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO scraped_movies").
		WithArgs("Heat", "8.3", "1995", "").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := store.ReplaceScraped(context.Background(), movies)
	require.Error(t, err)
	require.Contains(t, err.Error(), "insert into scraped_movies")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAPIClearsThenInserts(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	movies := []movie.APIMovie{
		{Title: "Inception", Genre: "Sci-Fi", Plot: "Dreams.", PosterURL: "poster"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM api_movies").
		WillReturnResult(pgxmock.NewResult("DELETE", 5))
	mock.ExpectExec("INSERT INTO api_movies").
		WithArgs("Inception", "Sci-Fi", "Dreams.", "poster").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	rows, err := store.ReplaceAPI(context.Background(), movies)
	require.NoError(t, err)
	require.Equal(t, 1, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceScrapedIsRepeatable(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	movies := []movie.ScrapedMovie{{Title: "Heat", Rating: "8.3", Year: "1995", PosterURL: "p"}}

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM scraped_movies").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectExec("INSERT INTO scraped_movies").
			WithArgs("Heat", "8.3", "1995", "p").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
	}

	for i := 0; i < 2; i++ {
		rows, err := store.ReplaceScraped(context.Background(), movies)
		require.NoError(t, err)
		require.Equal(t, 1, rows)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListScraped(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT title, rating, year, poster_url FROM scraped_movies").
		WillReturnRows(pgxmock.NewRows([]string{"title", "rating", "year", "poster_url"}).
			AddRow("The Shawshank Redemption", "9.3", "1994", "poster1").
			AddRow("The Godfather", "9.2", "1972", "poster2"))

	movies, err := store.ListScraped(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	require.Equal(t, "The Shawshank Redemption", movies[0].Title)
	require.Equal(t, "1972", movies[1].Year)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAPI(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT title, genre, plot, poster_url FROM api_movies").
		WillReturnRows(pgxmock.NewRows([]string{"title", "genre", "plot", "poster_url"}).
			AddRow("Inception", "Sci-Fi", "Dreams.", "poster"))

	movies, err := store.ListAPI(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "Inception", movies[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewWithPoolRequiresPool(t *testing.T) {
	t.Parallel()

	_, err := NewWithPool(nil)
	require.Error(t, err)
}
