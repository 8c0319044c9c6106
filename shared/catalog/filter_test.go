package catalog

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var genrePool = []domain.Genre{
	{Id: uuid.New(), Name: "Drama"},
	{Id: uuid.New(), Name: "Sci-Fi"},
	{Id: uuid.New(), Name: "Horror"},
	{Id: uuid.New(), Name: "Comedy"},
}

var titlePool = []string{"Dune", "Alien", "Aliens", "Dune: Part Two", "Heat", "The Thing", "Arrival", "DUNGEON"}

func randomMovies(r *rand.Rand, n int) []domain.Movie {
	movies := make([]domain.Movie, n)
	for i := range movies {
		var genres []domain.Genre
		for _, g := range genrePool {
			if r.IntN(3) == 0 {
				genres = append(genres, g)
			}
		}
		movies[i] = domain.Movie{
			Id:     uuid.New(),
			Title:  titlePool[r.IntN(len(titlePool))],
			Genres: genres,
			Rate:   float64(r.IntN(21)) / 2,
		}
	}
	return movies
}

func TestSearchByTitle(t *testing.T) {
	movies := []domain.Movie{{Title: "Dune"}, {Title: "Alien"}}

	assert.Equal(t, []domain.Movie{{Title: "Dune"}}, SearchByTitle(movies, "du"))
	assert.Equal(t, []domain.Movie{{Title: "Dune"}}, SearchByTitle(movies, "DUNE"))
	assert.Equal(t, movies, SearchByTitle(movies, ""))
	assert.Empty(t, SearchByTitle(movies, " "))
	assert.Empty(t, SearchByTitle(movies, "du "))
	assert.Equal(t, []domain.Movie{{Title: "Alien"}}, SearchByTitle(movies, "lie"))
	assert.Empty(t, SearchByTitle(movies, "heat"))
}

func TestFilterByGenre(t *testing.T) {
	drama := domain.Movie{Title: "Heat", Genres: []domain.Genre{{Name: "Drama"}}}
	scifi := domain.Movie{Title: "Dune", Genres: []domain.Genre{{Name: "Sci-Fi"}, {Name: "Drama"}}}
	none := domain.Movie{Title: "Untitled"}
	movies := []domain.Movie{drama, scifi, none}

	assert.Equal(t, movies, FilterByGenre(movies, AllGenres))
	assert.Equal(t, []domain.Movie{drama, scifi}, FilterByGenre(movies, "Drama"))
	assert.Equal(t, []domain.Movie{scifi}, FilterByGenre(movies, "Sci-Fi"))
	assert.Empty(t, FilterByGenre(movies, "Horror"))
}

func TestFilterByMinRating(t *testing.T) {
	movies := []domain.Movie{{Title: "a", Rate: 3}, {Title: "b", Rate: 7.5}, {Title: "c", Rate: 0}}

	assert.Equal(t, movies, FilterByMinRating(movies, 0))
	assert.Equal(t, []domain.Movie{{Title: "b", Rate: 7.5}}, FilterByMinRating(movies, 7.5))
	assert.Equal(t, []domain.Movie{{Title: "a", Rate: 3}, {Title: "b", Rate: 7.5}}, FilterByMinRating(movies, 3))
}

func TestFilters_NilInput(t *testing.T) {
	assert.Equal(t, []domain.Movie{}, SearchByTitle(nil, "x"))
	assert.Equal(t, []domain.Movie{}, FilterByGenre(nil, AllGenres))
	assert.Equal(t, []domain.Movie{}, FilterByMinRating(nil, 0))
	assert.Equal(t, []domain.Movie{}, Apply(nil, Query{}))
}

func TestFilters_DoNotMutateInput(t *testing.T) {
	movies := []domain.Movie{{Title: "Dune", Rate: 9}, {Title: "Alien", Rate: 2}}
	snapshot := append([]domain.Movie(nil), movies...)

	_ = Apply(movies, Query{Term: "alien", MinRating: 1})
	_ = FilterByMinRating(movies, 5)

	assert.Equal(t, snapshot, movies)
}

func TestIdentityProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		movies := randomMovies(r, r.IntN(40))
		assert.Equal(t, movies, FilterByMinRating(movies, 0))
		assert.Equal(t, movies, FilterByGenre(movies, AllGenres))
		assert.Equal(t, movies, SearchByTitle(movies, ""))
	}
}

func TestCompositionOrderIndependence(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	type step func([]domain.Movie) []domain.Movie
	terms := []string{"", "du", "ALIEN", "the", "zzz"}
	genres := []string{AllGenres, "Drama", "Sci-Fi", "Western"}
	thresholds := []float64{0, 2.5, 5, 9.5}

	for i := 0; i < 30; i++ {
		movies := randomMovies(r, 60)
		q := Query{
			Term:      terms[r.IntN(len(terms))],
			Genre:     genres[r.IntN(len(genres))],
			MinRating: thresholds[r.IntN(len(thresholds))],
		}
		s := step(func(ms []domain.Movie) []domain.Movie { return SearchByTitle(ms, q.Term) })
		g := step(func(ms []domain.Movie) []domain.Movie { return FilterByGenre(ms, q.Genre) })
		m := step(func(ms []domain.Movie) []domain.Movie { return FilterByMinRating(ms, q.MinRating) })

		orders := [][3]step{{s, g, m}, {s, m, g}, {g, s, m}, {g, m, s}, {m, s, g}, {m, g, s}}
		want := Apply(movies, q)
		for n, order := range orders {
			got := order[2](order[1](order[0](movies)))
			require.Equal(t, want, got, fmt.Sprintf("order %d, query %+v", n, q))
		}
	}
}

func TestQuery_Active(t *testing.T) {
	assert.False(t, Query{}.Active())
	assert.False(t, Query{Genre: AllGenres}.Active())
	assert.True(t, Query{Term: "du"}.Active())
	assert.True(t, Query{Term: " "}.Active())
	assert.True(t, Query{Genre: "Drama"}.Active())
	assert.True(t, Query{MinRating: 1}.Active())
}
