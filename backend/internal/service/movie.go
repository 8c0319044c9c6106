package service

import (
	"context"

	"github.com/mathewgeejo/cinemabase/shared/catalog"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/mathewgeejo/cinemabase/shared/logger"
)

// PlaceholderImageUrl is used for movies created without a poster.
const PlaceholderImageUrl = "https://placehold.co/300x450?text=No+Poster"

type MovieService interface {
	Create(ctx context.Context, data domain.MovieCreationData) (domain.MovieId, error)
	Get(ctx context.Context, id domain.MovieId) (domain.Movie, error)
	List(ctx context.Context, query catalog.Query) ([]domain.Movie, error)
	Update(ctx context.Context, id domain.MovieId, data domain.MovieUpdateData) error
	Delete(ctx context.Context, id domain.MovieId) error
}

type MovieStorage interface {
	CreateMovie(ctx context.Context, data domain.MovieCreationData) (domain.MovieId, error)
	Movie(ctx context.Context, id domain.MovieId) (domain.Movie, error)
	Movies(ctx context.Context) ([]domain.Movie, error)
	UpdateMovie(ctx context.Context, id domain.MovieId, data domain.MovieUpdateData) error
	DeleteMovie(ctx context.Context, id domain.MovieId) error
}

type Movie struct {
	storage  MovieStorage
	renderer *renderer
}

func NewMovie(storage MovieStorage) *Movie {
	return &Movie{
		storage:  storage,
		renderer: newRenderer(),
	}
}

func (m *Movie) Create(ctx context.Context, data domain.MovieCreationData) (domain.MovieId, error) {
	data.Title = m.renderer.PlainText(data.Title)
	if data.Title == "" {
		return domain.MovieId{}, errors.Validation("Title is required")
	}
	if len(data.GenreIds) == 0 {
		return domain.MovieId{}, errors.Validation("At least one genre is required")
	}
	if err := validateMovieFields(&data.Rate, &data.Description, &data.LengthMinutes); err != nil {
		return domain.MovieId{}, err
	}
	if data.ImageUrl == "" {
		data.ImageUrl = PlaceholderImageUrl
	}

	id, err := m.storage.CreateMovie(ctx, data)
	if err != nil {
		return domain.MovieId{}, storageError(err, "failed to create movie", "Failed to create movie")
	}
	logger.Log.Info("movie created", "movie_id", id, "title", data.Title)
	return id, nil
}

func (m *Movie) Get(ctx context.Context, id domain.MovieId) (domain.Movie, error) {
	movie, err := m.storage.Movie(ctx, id)
	if err != nil {
		return domain.Movie{}, storageError(err, "failed to load movie", "Failed to load movie")
	}
	movie.DescriptionHTML = m.renderer.HTML(movie.Description)
	return movie, nil
}

// List returns the catalog narrowed by query. An inactive query returns
// everything.
func (m *Movie) List(ctx context.Context, query catalog.Query) ([]domain.Movie, error) {
	movies, err := m.storage.Movies(ctx)
	if err != nil {
		return nil, storageError(err, "failed to load movies", "Failed to load movies")
	}
	if query.Active() {
		movies = catalog.Apply(movies, query)
	}
	return movies, nil
}

func (m *Movie) Update(ctx context.Context, id domain.MovieId, data domain.MovieUpdateData) error {
	if data.Title != nil {
		title := m.renderer.PlainText(*data.Title)
		if title == "" {
			return errors.Validation("Title cannot be empty")
		}
		data.Title = &title
	}
	if data.GenreIds != nil && len(*data.GenreIds) == 0 {
		return errors.Validation("At least one genre is required")
	}
	if err := validateMovieFields(data.Rate, data.Description, data.LengthMinutes); err != nil {
		return err
	}
	if data.ImageUrl != nil && *data.ImageUrl == "" {
		placeholder := PlaceholderImageUrl
		data.ImageUrl = &placeholder
	}

	if err := m.storage.UpdateMovie(ctx, id, data); err != nil {
		return storageError(err, "failed to update movie", "Failed to update movie")
	}
	return nil
}

// Delete removes the movie from the catalog and from every user's lists.
func (m *Movie) Delete(ctx context.Context, id domain.MovieId) error {
	if err := m.storage.DeleteMovie(ctx, id); err != nil {
		return storageError(err, "failed to delete movie", "Failed to delete movie")
	}
	logger.Log.Info("movie deleted", "movie_id", id)
	return nil
}

// validateMovieFields checks the optional numeric and text fields. nil means
// "not provided".
func validateMovieFields(rate *float64, description *string, lengthMinutes *int) error {
	if rate != nil && (*rate < 0 || *rate > 10) {
		return errors.Validation("Rate must be between 0 and 10")
	}
	if description != nil && *description == "" {
		return errors.Validation("Description is required")
	}
	if lengthMinutes != nil && *lengthMinutes <= 0 {
		return errors.Validation("Length must be positive")
	}
	return nil
}

// storageError passes domain errors through and hides everything else.
func storageError(err error, logMsg, userMsg string) error {
	if errors.IsDomain(err) {
		return err
	}
	logger.Log.Error(logMsg, "error", err)
	return errors.Internal(userMsg)
}
