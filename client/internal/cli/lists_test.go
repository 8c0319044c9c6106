package cli

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemove(t *testing.T) {
	movieId := uuid.New()
	var calls []string
	client := &MockClient{
		MockAddToList: func(token string, kind domain.ListKind, id domain.MovieId) error {
			assert.Equal(t, "tok", token)
			assert.Equal(t, movieId, id)
			calls = append(calls, "add "+string(kind))
			return nil
		},
		MockRemoveFromList: func(token string, kind domain.ListKind, id domain.MovieId) error {
			calls = append(calls, "remove "+string(kind))
			return nil
		},
	}
	sessions := &memorySessions{session: testSession()}

	out, err := run(t, client, sessions, "add", "ongoing", movieId.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Added to ongoing")

	out, err = run(t, client, sessions, "remove", "wishlist", movieId.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Removed from wishlist")

	assert.Equal(t, []string{"add ongoing", "remove wishlist"}, calls)
}

func TestAdd_InvalidArgs(t *testing.T) {
	client := &MockClient{MockAddToList: func(string, domain.ListKind, domain.MovieId) error {
		t.Fatal("client must not be called")
		return nil
	}}
	sessions := &memorySessions{session: testSession()}

	_, err := run(t, client, sessions, "add", "favourites", uuid.NewString())
	assert.ErrorContains(t, err, "unknown list")

	_, err = run(t, client, sessions, "add", "wishlist", "42")
	assert.ErrorContains(t, err, "invalid movie id")

	_, err = run(t, client, sessions, "add", "wishlist")
	assert.Error(t, err)

	_, err = run(t, client, &memorySessions{}, "add", "wishlist", uuid.NewString())
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestAdd_UnknownMovie(t *testing.T) {
	client := &MockClient{MockAddToList: func(string, domain.ListKind, domain.MovieId) error {
		return internal_errors.NotFound("Movie not found")
	}}
	_, err := run(t, client, &memorySessions{session: testSession()}, "add", "wishlist", uuid.NewString())
	assert.True(t, internal_errors.IsNotFound(err))
}

func TestLists(t *testing.T) {
	movie := domain.Movie{Id: uuid.New(), Title: "Heat"}
	client := &MockClient{MockLists: func(token string) (domain.Library, error) {
		lib := domain.NewLibrary()
		lib.Append(domain.Completed, movie)
		return lib, nil
	}}

	out, err := run(t, client, &memorySessions{session: testSession()}, "lists")
	require.NoError(t, err)
	assert.Contains(t, out, "wishlist (0)")
	assert.Contains(t, out, "bookmarks (0)")
	assert.Contains(t, out, "ongoing (0)")
	assert.Contains(t, out, "completed (1)")
	assert.Contains(t, out, movie.Id.String()+"  Heat")
}
