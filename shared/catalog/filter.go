// Package catalog filters an in-memory movie collection.
//
// Every filter is a pure predicate applied element-wise, so the three filters
// commute: any composition order yields the intersection of the individual
// results, in input order. Inputs are never mutated.
package catalog

import (
	"strings"

	"github.com/mathewgeejo/cinemabase/shared/domain"
)

// AllGenres is the genre name that disables genre filtering.
const AllGenres = "All"

// Query is the full set of catalog filters. The zero value matches everything
// except that Genre must be AllGenres or empty to pass every genre.
type Query struct {
	Term      string
	Genre     string
	MinRating float64
}

type Predicate func(domain.Movie) bool

func retain(movies []domain.Movie, keep Predicate) []domain.Movie {
	if movies == nil {
		return []domain.Movie{}
	}
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func TitleContains(term string) Predicate {
	needle := strings.ToLower(term)
	return func(m domain.Movie) bool {
		return needle == "" || strings.Contains(strings.ToLower(m.Title), needle)
	}
}

func InGenre(genreName string) Predicate {
	return func(m domain.Movie) bool {
		return genreName == "" || genreName == AllGenres || m.HasGenre(genreName)
	}
}

func RatedAtLeast(threshold float64) Predicate {
	return func(m domain.Movie) bool {
		return threshold <= 0 || m.Rate >= threshold
	}
}

// SearchByTitle keeps movies whose title contains term, case-insensitively.
// An empty term passes everything through.
func SearchByTitle(movies []domain.Movie, term string) []domain.Movie {
	return retain(movies, TitleContains(term))
}

// FilterByGenre keeps movies with a genre named genreName. "All" passes
// everything through.
func FilterByGenre(movies []domain.Movie, genreName string) []domain.Movie {
	return retain(movies, InGenre(genreName))
}

// FilterByMinRating keeps movies rated at least threshold. A threshold of 0
// passes everything through.
func FilterByMinRating(movies []domain.Movie, threshold float64) []domain.Movie {
	return retain(movies, RatedAtLeast(threshold))
}

// Apply runs all three filters in a single pass.
func Apply(movies []domain.Movie, q Query) []domain.Movie {
	title, genre, rating := TitleContains(q.Term), InGenre(q.Genre), RatedAtLeast(q.MinRating)
	return retain(movies, func(m domain.Movie) bool {
		return title(m) && genre(m) && rating(m)
	})
}

// Active reports whether q narrows the collection at all.
func (q Query) Active() bool {
	return q.Term != "" || (q.Genre != "" && q.Genre != AllGenres) || q.MinRating > 0
}
