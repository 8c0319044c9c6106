package service

import (
	"context"
	"time"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/mathewgeejo/cinemabase/shared/logger"
	"github.com/mathewgeejo/cinemabase/shared/middleware/metrics"
	"github.com/sethvargo/go-retry"
)

const (
	defaultLibraryRetries   = 3
	defaultLibraryBaseDelay = 50 * time.Millisecond
)

type LibraryService interface {
	Add(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error
	Remove(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error
	Lists(ctx context.Context, userId domain.UserId) (domain.Library, error)
}

// LibraryStorage mutates one (user, movie) pair per call. Every call is a
// single atomic statement and safe to repeat.
type LibraryStorage interface {
	AddToList(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error
	RemoveFromList(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error
	SetWatchStatus(ctx context.Context, userId domain.UserId, movieId domain.MovieId, status domain.WatchStatus) error
	ClearWatchStatus(ctx context.Context, userId domain.UserId, movieId domain.MovieId, status domain.WatchStatus) error
	Library(ctx context.Context, userId domain.UserId) (domain.Library, error)
}

type Library struct {
	storage   LibraryStorage
	retries   uint64
	baseDelay time.Duration
}

func NewLibrary(storage LibraryStorage) *Library {
	return &Library{
		storage:   storage,
		retries:   defaultLibraryRetries,
		baseDelay: defaultLibraryBaseDelay,
	}
}

// Add puts movieId on the list. Ongoing and completed share one status per
// movie, so adding to one of them takes the movie off the other.
func (l *Library) Add(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) (err error) {
	defer func() { metrics.LibraryMutations.WithLabelValues("add", string(kind), metrics.Outcome(err)).Inc() }()

	if status, ok := kind.WatchStatus(); ok {
		return l.mutate(ctx, "set watch status", userId, movieId, func(ctx context.Context) error {
			return l.storage.SetWatchStatus(ctx, userId, movieId, status)
		})
	}
	if kind != domain.Wishlist && kind != domain.Bookmarks {
		return errors.Validation("Unknown list")
	}
	return l.mutate(ctx, "add to list", userId, movieId, func(ctx context.Context) error {
		return l.storage.AddToList(ctx, userId, kind, movieId)
	})
}

// Remove is idempotent: removing a movie that is not on the list succeeds.
func (l *Library) Remove(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) (err error) {
	defer func() { metrics.LibraryMutations.WithLabelValues("remove", string(kind), metrics.Outcome(err)).Inc() }()

	if status, ok := kind.WatchStatus(); ok {
		return l.mutate(ctx, "clear watch status", userId, movieId, func(ctx context.Context) error {
			return l.storage.ClearWatchStatus(ctx, userId, movieId, status)
		})
	}
	if kind != domain.Wishlist && kind != domain.Bookmarks {
		return errors.Validation("Unknown list")
	}
	return l.mutate(ctx, "remove from list", userId, movieId, func(ctx context.Context) error {
		return l.storage.RemoveFromList(ctx, userId, kind, movieId)
	})
}

func (l *Library) Lists(ctx context.Context, userId domain.UserId) (domain.Library, error) {
	library, err := l.storage.Library(ctx, userId)
	if err != nil {
		if errors.IsDomain(err) {
			return domain.Library{}, err
		}
		logger.Log.Error("failed to load library", "user_id", userId, "error", err)
		return domain.Library{}, errors.Internal("Failed to load lists")
	}
	return library, nil
}

// mutate retries collaborator failures with exponential backoff. Domain
// errors (NotFound, ...) are final. Whatever is left after the last attempt
// is logged and hidden behind Internal.
func (l *Library) mutate(ctx context.Context, op string, userId domain.UserId, movieId domain.MovieId, fn retry.RetryFunc) error {
	backoff := retry.WithMaxRetries(l.retries, retry.NewExponential(l.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || errors.IsDomain(err) {
			return err
		}
		logger.Log.Warn("library mutation failed, retrying", "op", op, "user_id", userId, "movie_id", movieId, "error", err)
		return retry.RetryableError(err)
	})
	if err == nil || errors.IsDomain(err) {
		return err
	}
	logger.Log.Error("library mutation failed", "op", op, "user_id", userId, "movie_id", movieId, "error", err)
	return errors.Internal("Failed to update list")
}
