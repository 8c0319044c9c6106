package apiclient

import (
	"context"
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/domain"
)

// Movies fetches the whole catalog. Filtering and paging happen locally.
func (c *APIClient) Movies(ctx context.Context) ([]domain.Movie, error) {
	var resp api.MoviesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/movies", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

func (c *APIClient) Movie(ctx context.Context, id domain.MovieId) (domain.Movie, error) {
	var movie domain.Movie
	err := c.do(ctx, http.MethodGet, "/v1/movies/"+id.String(), "", nil, &movie)
	return movie, err
}

func (c *APIClient) Genres(ctx context.Context) ([]domain.Genre, error) {
	var resp api.GenresResponse
	if err := c.do(ctx, http.MethodGet, "/v1/genres", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}
