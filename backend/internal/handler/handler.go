package handler

import (
	"context"

	"github.com/mathewgeejo/cinemabase/backend/internal/service"
	"github.com/mathewgeejo/cinemabase/shared/config"
)

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth    service.AuthService
	library service.LibraryService
	movie   service.MovieService
	genre   service.GenreService
	user    service.UserService
	health  HealthChecker
	cfg     *config.Config
}

func New(auth service.AuthService, library service.LibraryService, movie service.MovieService, genre service.GenreService, user service.UserService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		auth:    auth,
		library: library,
		movie:   movie,
		genre:   genre,
		user:    user,
		health:  health,
		cfg:     cfg,
	}
}
