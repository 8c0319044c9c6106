package pg

import (
	"context"
	"fmt"

	"github.com/mathewgeejo/cinemabase/shared/domain"
)

// =========================================================================
// Public Methods (satisfy the service.LibraryStorage interface)
//
// Every mutation is a single statement keyed by (user, movie), so concurrent
// requests for the same user never overwrite each other.
// =========================================================================

// AddToList adds movieId to an independent set (wishlist or bookmarks).
// Re-adding is a no-op. A missing movie surfaces as NotFound through the
// foreign key.
func (s *Storage) AddToList(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_movie_lists(user_id, movie_id, list) VALUES($1, $2, $3)
		ON CONFLICT (user_id, list, movie_id) DO NOTHING`,
		userId, movieId, string(kind),
	)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return referenceError(err, "Movie")
		}
		return fmt.Errorf("failed to add movie to %s: %w", kind, err)
	}
	return nil
}

// RemoveFromList is idempotent: removing a non-member is not an error.
func (s *Storage) RemoveFromList(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM user_movie_lists WHERE user_id = $1 AND list = $2 AND movie_id = $3`,
		userId, string(kind), movieId,
	)
	if err != nil {
		return fmt.Errorf("failed to remove movie from %s: %w", kind, err)
	}
	return nil
}

// SetWatchStatus moves the movie to status in one upsert. Since the row holds
// one status, setting completed removes it from ongoing and vice versa.
func (s *Storage) SetWatchStatus(ctx context.Context, userId domain.UserId, movieId domain.MovieId, status domain.WatchStatus) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_watch_status(user_id, movie_id, status) VALUES($1, $2, $3)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET status = EXCLUDED.status, updated_at = now()
		WHERE user_watch_status.status <> EXCLUDED.status`,
		userId, movieId, string(status),
	)
	if err != nil {
		if pqCode(err) == foreignKeyViolation {
			return referenceError(err, "Movie")
		}
		return fmt.Errorf("failed to set watch status: %w", err)
	}
	return nil
}

// ClearWatchStatus removes the movie from the status list only if it is
// currently there: removing from ongoing leaves a completed movie alone.
func (s *Storage) ClearWatchStatus(ctx context.Context, userId domain.UserId, movieId domain.MovieId, status domain.WatchStatus) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM user_watch_status WHERE user_id = $1 AND movie_id = $2 AND status = $3`,
		userId, movieId, string(status),
	)
	if err != nil {
		return fmt.Errorf("failed to clear watch status: %w", err)
	}
	return nil
}

// Library resolves all four lists to full movie records, oldest addition first.
func (s *Storage) Library(ctx context.Context, userId domain.UserId) (domain.Library, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.list, `+movieColumns+`, l.added_at AS at
		FROM user_movie_lists l JOIN movies m ON m.id = l.movie_id
		WHERE l.user_id = $1
		UNION ALL
		SELECT w.status, `+movieColumns+`, w.updated_at AS at
		FROM user_watch_status w JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY at, 2`,
		userId,
	)
	if err != nil {
		return domain.Library{}, fmt.Errorf("failed to query library: %w", err)
	}
	defer rows.Close()

	type entry struct {
		kind  domain.ListKind
		movie domain.Movie
	}
	var entries []entry
	for rows.Next() {
		var e entry
		var kind string
		var at any
		err := rows.Scan(&kind, &e.movie.Id, &e.movie.Title, &e.movie.Rate, &e.movie.Description,
			&e.movie.TrailerLink, &e.movie.LengthMinutes, &e.movie.ImageUrl, &e.movie.CreatedAt, &at)
		if err != nil {
			return domain.Library{}, fmt.Errorf("failed to scan library entry: %w", err)
		}
		e.kind = domain.ListKind(kind)
		e.movie.Genres = []domain.Genre{}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return domain.Library{}, fmt.Errorf("rows iteration error: %w", err)
	}

	movies := make([]domain.Movie, len(entries))
	for i, e := range entries {
		movies[i] = e.movie
	}
	if err := s.attachGenres(ctx, s.db, movies); err != nil {
		return domain.Library{}, err
	}

	library := domain.NewLibrary()
	for i, e := range entries {
		library.Append(e.kind, movies[i])
	}
	return library, nil
}
