package setup

import (
	"context"

	"github.com/mathewgeejo/cinemabase/backend/internal/handler"
	"github.com/mathewgeejo/cinemabase/backend/internal/service"
	"github.com/mathewgeejo/cinemabase/backend/internal/storage/pg"
	"github.com/mathewgeejo/cinemabase/shared/config"
	"github.com/mathewgeejo/cinemabase/shared/crypto"
	jwt_internal "github.com/mathewgeejo/cinemabase/shared/jwt"
	"github.com/mathewgeejo/cinemabase/shared/logger"
	mw "github.com/mathewgeejo/cinemabase/shared/middleware"
	"github.com/mathewgeejo/cinemabase/shared/revocation"
)

// Store is everything the services need from persistence. *pg.Storage
// implements it.
type Store interface {
	service.AuthStorage
	service.LibraryStorage
	service.MovieStorage
	service.GenreStorage
	service.UserStorage
	revocation.Storage
	handler.HealthChecker
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        Store
	Handler        *handler.Handler
	Jwt            jwt_internal.JwtService
	AuthMiddleware *mw.Auth
	Revocations    *revocation.Cache
	Config         *config.Config
}

// SetupDependencies connects to postgres, applies migrations and wires the
// services. The revocation cache refreshes in the background until ctx is done.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := Build(storage, cfg)
	if err := deps.Revocations.Update(ctx); err != nil {
		storage.Cleanup()
		return nil, err
	}
	deps.Revocations.StartBackgroundUpdate(ctx, cfg.Public.RevocationRefreshInterval)

	logger.Log.Info("dependencies initialized", "revoked_sessions", deps.Revocations.Len())
	return deps, nil
}

// Build wires services on top of an already opened store.
func Build(store Store, cfg *config.Config) *Dependencies {
	jwt := jwt_internal.New(cfg.JwtKey(), cfg.JwtTTL())
	hasher := crypto.NewBcryptHasher(cfg.Public.BcryptCost)
	revocations := revocation.NewCache(store)

	auth := service.NewAuth(store, hasher, jwt, revocations, &cfg.Public)
	library := service.NewLibrary(store)
	movie := service.NewMovie(store)
	genre := service.NewGenre(store)
	user := service.NewUser(store)

	h := handler.New(auth, library, movie, genre, user, store, cfg)

	return &Dependencies{
		Storage:        store,
		Handler:        h,
		Jwt:            jwt,
		AuthMiddleware: mw.NewAuth(jwt, revocations),
		Revocations:    revocations,
		Config:         cfg,
	}
}
