package service

import (
	"context"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
)

type GenreService interface {
	Create(ctx context.Context, name string) (domain.GenreId, error)
	List(ctx context.Context) ([]domain.Genre, error)
}

type GenreStorage interface {
	CreateGenre(ctx context.Context, name string) (domain.GenreId, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
}

type Genre struct {
	storage  GenreStorage
	renderer *renderer
}

func NewGenre(storage GenreStorage) *Genre {
	return &Genre{storage: storage, renderer: newRenderer()}
}

func (g *Genre) Create(ctx context.Context, name string) (domain.GenreId, error) {
	name = g.renderer.PlainText(name)
	if name == "" {
		return domain.GenreId{}, errors.Validation("Genre name is required")
	}
	id, err := g.storage.CreateGenre(ctx, name)
	if err != nil {
		return domain.GenreId{}, storageError(err, "failed to create genre", "Failed to create genre")
	}
	return id, nil
}

func (g *Genre) List(ctx context.Context) ([]domain.Genre, error) {
	genres, err := g.storage.Genres(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load genres", "Failed to load genres")
	}
	return genres, nil
}
