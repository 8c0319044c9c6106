package apiclient

import (
	"context"
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/domain"
)

func listPath(kind domain.ListKind, movieId domain.MovieId) string {
	return "/v1/users/me/" + string(kind) + "/" + movieId.String()
}

func (c *APIClient) AddToList(ctx context.Context, token string, kind domain.ListKind, movieId domain.MovieId) error {
	return c.do(ctx, http.MethodPost, listPath(kind, movieId), token, nil, nil)
}

func (c *APIClient) RemoveFromList(ctx context.Context, token string, kind domain.ListKind, movieId domain.MovieId) error {
	return c.do(ctx, http.MethodDelete, listPath(kind, movieId), token, nil, nil)
}

func (c *APIClient) Lists(ctx context.Context, token string) (domain.Library, error) {
	var lib domain.Library
	err := c.do(ctx, http.MethodGet, "/v1/users/me/lists", token, nil, &lib)
	return lib, err
}
