package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
)

const movieColumns = "m.id, m.title, m.rate, m.description, m.trailer_link, m.length_minutes, m.image_url, m.created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

// =========================================================================
// Public Methods (satisfy the service.MovieStorage interface)
// =========================================================================

// CreateMovie inserts the movie and its genre references atomically.
func (s *Storage) CreateMovie(ctx context.Context, data domain.MovieCreationData) (domain.MovieId, error) {
	id := uuid.New()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.insertMovie(ctx, tx, id, data); err != nil {
			return err
		}
		return s.setMovieGenres(ctx, tx, id, data.GenreIds)
	})
	if err != nil {
		return domain.MovieId{}, err
	}
	return id, nil
}

func (s *Storage) Movie(ctx context.Context, id domain.MovieId) (domain.Movie, error) {
	movie, err := s.movie(ctx, s.db, id)
	if err != nil {
		return domain.Movie{}, err
	}
	movies := []domain.Movie{movie}
	if err := s.attachGenres(ctx, s.db, movies); err != nil {
		return domain.Movie{}, err
	}
	return movies[0], nil
}

// Movies returns the whole catalog, newest first.
func (s *Storage) Movies(ctx context.Context) ([]domain.Movie, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies m ORDER BY m.created_at DESC, m.title")
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	if err := s.attachGenres(ctx, s.db, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// UpdateMovie changes the non-nil fields. Genre references are replaced as a whole.
func (s *Storage) UpdateMovie(ctx context.Context, id domain.MovieId, data domain.MovieUpdateData) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.updateMovie(ctx, tx, id, data); err != nil {
			return err
		}
		if data.GenreIds == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM movie_genres WHERE movie_id = $1", id); err != nil {
			return fmt.Errorf("failed to clear movie genres: %w", err)
		}
		return s.setMovieGenres(ctx, tx, id, *data.GenreIds)
	})
}

// DeleteMovie removes the movie. List memberships go with it (ON DELETE CASCADE).
func (s *Storage) DeleteMovie(ctx context.Context, id domain.MovieId) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return checkAffected(result, "Movie not found")
}

// =========================================================================
// Internal Methods
// =========================================================================

func (s *Storage) insertMovie(ctx context.Context, q Querier, id domain.MovieId, data domain.MovieCreationData) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO movies(id, title, rate, description, trailer_link, length_minutes, image_url)
		VALUES($1, $2, $3, $4, $5, $6, $7)`,
		id, data.Title, data.Rate, data.Description, data.TrailerLink, data.LengthMinutes, data.ImageUrl,
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return internal_errors.Conflict("Movie with this title already exists")
		}
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

func (s *Storage) setMovieGenres(ctx context.Context, q Querier, id domain.MovieId, genreIds []domain.GenreId) error {
	for _, genreId := range genreIds {
		_, err := q.ExecContext(ctx, `
			INSERT INTO movie_genres(movie_id, genre_id) VALUES($1, $2)
			ON CONFLICT DO NOTHING`,
			id, genreId,
		)
		if err != nil {
			if pqCode(err) == foreignKeyViolation {
				return referenceError(err, "Genre")
			}
			return fmt.Errorf("failed to insert movie genre: %w", err)
		}
	}
	return nil
}

func (s *Storage) updateMovie(ctx context.Context, q Querier, id domain.MovieId, data domain.MovieUpdateData) error {
	var rate sql.NullFloat64
	if data.Rate != nil {
		rate = sql.NullFloat64{Float64: *data.Rate, Valid: true}
	}
	var length sql.NullInt64
	if data.LengthMinutes != nil {
		length = sql.NullInt64{Int64: int64(*data.LengthMinutes), Valid: true}
	}
	result, err := q.ExecContext(ctx, `
		UPDATE movies SET
			title          = COALESCE($2, title),
			rate           = COALESCE($3, rate),
			description    = COALESCE($4, description),
			trailer_link   = COALESCE($5, trailer_link),
			length_minutes = COALESCE($6, length_minutes),
			image_url      = COALESCE($7, image_url)
		WHERE id = $1`,
		id, nullString(data.Title), rate, nullString(data.Description), nullString(data.TrailerLink), length, nullString(data.ImageUrl),
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return internal_errors.Conflict("Movie with this title already exists")
		}
		return fmt.Errorf("failed to update movie: %w", err)
	}
	return checkAffected(result, "Movie not found")
}

func (s *Storage) movie(ctx context.Context, q Querier, id domain.MovieId) (domain.Movie, error) {
	row := q.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies m WHERE m.id = $1", id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, internal_errors.NotFound("Movie not found")
	}
	return m, err
}

func scanMovie(row rowScanner) (domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(&m.Id, &m.Title, &m.Rate, &m.Description, &m.TrailerLink, &m.LengthMinutes, &m.ImageUrl, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Movie{}, err
		}
		return domain.Movie{}, fmt.Errorf("failed to scan movie: %w", err)
	}
	m.Genres = []domain.Genre{}
	return m, nil
}

// attachGenres resolves genre references for movies in one query.
func (s *Storage) attachGenres(ctx context.Context, q Querier, movies []domain.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	ids := make([]string, 0, len(movies))
	index := make(map[domain.MovieId][]int, len(movies))
	for i, m := range movies {
		if _, seen := index[m.Id]; !seen {
			ids = append(ids, m.Id.String())
		}
		index[m.Id] = append(index[m.Id], i)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT mg.movie_id, g.id, g.name
		FROM movie_genres mg JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1::uuid[])
		ORDER BY g.name`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("failed to query movie genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieId domain.MovieId
		var g domain.Genre
		if err := rows.Scan(&movieId, &g.Id, &g.Name); err != nil {
			return fmt.Errorf("failed to scan movie genre: %w", err)
		}
		for _, i := range index[movieId] {
			movies[i].Genres = append(movies[i].Genres, g)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}
