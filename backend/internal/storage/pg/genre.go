package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
)

func (s *Storage) CreateGenre(ctx context.Context, name string) (domain.GenreId, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx, "INSERT INTO genres(id, name) VALUES($1, $2)", id, name)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return domain.GenreId{}, internal_errors.Conflict("Genre already exists")
		}
		return domain.GenreId{}, fmt.Errorf("failed to insert genre: %w", err)
	}
	return id, nil
}

func (s *Storage) Genres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM genres ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := []domain.Genre{}
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.Id, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return genres, nil
}
