package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLibraryRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/v1/users/me/lists", h.GetLists)
	router.Post("/v1/users/me/{list}/{movieId}", h.AddToList)
	router.Delete("/v1/users/me/{list}/{movieId}", h.RemoveFromList)
	return router
}

func TestAddToListHandler(t *testing.T) {
	h := newTestHandler()
	router := newLibraryRouter(h)
	p := domain.Principal{Id: uuid.New(), Role: domain.RoleUser}
	movieId := uuid.New()

	tests := []struct {
		name           string
		path           string
		authenticated  bool
		mockErr        error
		expectedStatus int
		expectedKind   domain.ListKind
	}{
		{name: "wishlist", path: "/v1/users/me/wishlist/" + movieId.String(), authenticated: true, expectedStatus: http.StatusOK, expectedKind: domain.Wishlist},
		{name: "bookmarks", path: "/v1/users/me/bookmarks/" + movieId.String(), authenticated: true, expectedStatus: http.StatusOK, expectedKind: domain.Bookmarks},
		{name: "ongoing", path: "/v1/users/me/ongoing/" + movieId.String(), authenticated: true, expectedStatus: http.StatusOK, expectedKind: domain.Ongoing},
		{name: "completed", path: "/v1/users/me/completed/" + movieId.String(), authenticated: true, expectedStatus: http.StatusOK, expectedKind: domain.Completed},
		{name: "unknown movie", path: "/v1/users/me/ongoing/" + movieId.String(), authenticated: true, mockErr: internal_errors.NotFound("Movie not found"), expectedStatus: http.StatusNotFound},
		{name: "unknown list", path: "/v1/users/me/favourites/" + movieId.String(), authenticated: true, expectedStatus: http.StatusNotFound},
		{name: "malformed movie id", path: "/v1/users/me/wishlist/42", authenticated: true, expectedStatus: http.StatusBadRequest},
		{name: "no session", path: "/v1/users/me/wishlist/" + movieId.String(), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h.library = &MockLibraryService{MockAdd: func(userId domain.UserId, kind domain.ListKind, gotMovie domain.MovieId) error {
				called = true
				assert.Equal(t, p.Id, userId)
				assert.Equal(t, movieId, gotMovie)
				if tt.expectedKind != "" {
					assert.Equal(t, tt.expectedKind, kind)
				}
				return tt.mockErr
			}}

			req := createRequest(t, http.MethodPost, tt.path, nil)
			if tt.authenticated {
				req = withPrincipal(req, p)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedKind != "" {
				assert.True(t, called)
			}
		})
	}
}

func TestRemoveFromListHandler(t *testing.T) {
	h := newTestHandler()
	router := newLibraryRouter(h)
	p := domain.Principal{Id: uuid.New(), Role: domain.RoleUser}

	var removed domain.ListKind
	h.library = &MockLibraryService{MockRemove: func(userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error {
		removed = kind
		return nil
	}}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, withPrincipal(createRequest(t, http.MethodDelete, "/v1/users/me/completed/"+uuid.NewString(), nil), p))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.Completed, removed)
}

func TestGetListsHandler(t *testing.T) {
	h := newTestHandler()
	router := newLibraryRouter(h)
	p := domain.Principal{Id: uuid.New(), Role: domain.RoleUser}
	movie := domain.Movie{Id: uuid.New(), Title: "Dune", Genres: []domain.Genre{}}

	h.library = &MockLibraryService{MockLists: func(userId domain.UserId) (domain.Library, error) {
		assert.Equal(t, p.Id, userId)
		lib := domain.NewLibrary()
		lib.Append(domain.Ongoing, movie)
		return lib, nil
	}}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, withPrincipal(createRequest(t, http.MethodGet, "/v1/users/me/lists", nil), p))
	require.Equal(t, http.StatusOK, rr.Code)

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Len(t, raw["ongoing"], 1)
	assert.Equal(t, "Dune", raw["ongoing"][0]["title"])
	for _, key := range []string{"wishlist", "bookmarks", "completed"} {
		list, ok := raw[key]
		assert.True(t, ok, key)
		assert.NotNil(t, list, "empty lists are arrays, not null")
	}
}
