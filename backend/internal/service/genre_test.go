package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockGenreStorage struct {
	CreateGenreFunc func(name string) (domain.GenreId, error)
	GenresFunc      func() ([]domain.Genre, error)
}

func (m *MockGenreStorage) CreateGenre(ctx context.Context, name string) (domain.GenreId, error) {
	if m.CreateGenreFunc != nil {
		return m.CreateGenreFunc(name)
	}
	return uuid.New(), nil
}

func (m *MockGenreStorage) Genres(ctx context.Context) ([]domain.Genre, error) {
	if m.GenresFunc != nil {
		return m.GenresFunc()
	}
	return []domain.Genre{}, nil
}

func TestGenreCreate(t *testing.T) {
	var saved string
	svc := NewGenre(&MockGenreStorage{CreateGenreFunc: func(name string) (domain.GenreId, error) {
		saved = name
		return uuid.New(), nil
	}})

	_, err := svc.Create(context.Background(), "  Sci-Fi ")
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi", saved)

	_, err = svc.Create(context.Background(), "   ")
	requireStatus(t, err, http.StatusBadRequest)

	svc = NewGenre(&MockGenreStorage{CreateGenreFunc: func(string) (domain.GenreId, error) {
		return domain.GenreId{}, internal_errors.Conflict("Genre already exists")
	}})
	_, err = svc.Create(context.Background(), "Drama")
	requireStatus(t, err, http.StatusConflict)
}

func TestGenreList(t *testing.T) {
	genres := []domain.Genre{{Id: uuid.New(), Name: "Drama"}}
	svc := NewGenre(&MockGenreStorage{GenresFunc: func() ([]domain.Genre, error) { return genres, nil }})

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, genres, got)

	svc = NewGenre(&MockGenreStorage{GenresFunc: func() ([]domain.Genre, error) { return nil, errors.New("boom") }})
	_, err = svc.List(context.Background())
	requireStatus(t, err, http.StatusInternalServerError)
}
