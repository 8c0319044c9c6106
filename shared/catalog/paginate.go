package catalog

import "github.com/mathewgeejo/cinemabase/shared/domain"

// Page is one client-side slice of a filtered collection.
type Page struct {
	Movies     []domain.Movie
	Number     int
	TotalPages int
	Total      int
}

// Paginate returns page number (1-based) of size pageSize. Out of range pages
// are clamped to the nearest valid page.
func Paginate(movies []domain.Movie, page, pageSize int) Page {
	total := len(movies)
	if pageSize <= 0 {
		pageSize = total
	}
	totalPages := 1
	if pageSize > 0 && total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start > end {
		start = end
	}

	out := make([]domain.Movie, end-start)
	copy(out, movies[start:end])
	return Page{Movies: out, Number: page, TotalPages: totalPages, Total: total}
}
