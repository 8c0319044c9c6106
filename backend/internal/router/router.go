package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mathewgeejo/cinemabase/backend/internal/setup"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	mw "github.com/mathewgeejo/cinemabase/shared/middleware"
	"github.com/mathewgeejo/cinemabase/shared/middleware/metrics"
	rl "github.com/mathewgeejo/cinemabase/shared/middleware/ratelimiter"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

const (
	authRequestsPerMinute = 20  // per IP, signup and signin
	authGlobalPerSecond   = 200 // all IPs combined
	userRequestsPerSecond = 50  // per signed-in user
	userBurst             = 100
)

// New creates and configures a chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(metrics.Middleware)

	allowedOrigins := deps.Config.Public.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// JSON API only, no scripts or styles
	r.Use(mw.SecurityHeaders(deps.Config.Public.SecureHeaders, mw.APIContentSecurityPolicy))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		// Public catalog
		v1.Get("/movies", h.GetMovies)
		v1.Get("/movies/{movieId}", h.GetMovie)
		v1.Get("/genres", h.GetGenres)

		v1.Route("/auth", func(auth chi.Router) {
			auth.Group(func(limited chi.Router) {
				limited.Use(mw.RateLimit(rl.PerMinute(authRequestsPerMinute), mw.GetIP))
				limited.Use(mw.GlobalRateLimit(rl.New(authGlobalPerSecond, authGlobalPerSecond, time.Hour)))
				limited.Post("/signup", h.Signup)
				limited.Post("/signin", h.Signin)
			})
			// Signout (no rate limits)
			auth.With(authMw.NeedAuth()).Post("/signout", h.Signout)
		})

		// Logged-in user routes
		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())
			loggedIn.Use(mw.RateLimit(rl.New(userRequestsPerSecond, userBurst, time.Hour), mw.GetPrincipalKey))

			loggedIn.Get("/users/me", h.Me)
			loggedIn.Patch("/users/me", h.UpdateMe)
			loggedIn.Get("/users/me/lists", h.GetLists)
			loggedIn.Post("/users/me/{list}/{movieId}", h.AddToList)
			loggedIn.Delete("/users/me/{list}/{movieId}", h.RemoveFromList)
		})

		// Admin routes
		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())
			admin.Post("/genres", h.CreateGenre)
			admin.Post("/movies", h.CreateMovie)
			admin.Patch("/movies/{movieId}", h.UpdateMovie)
			admin.Delete("/movies/{movieId}", h.DeleteMovie)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorAndStatusCode(w, internal_errors.NotFound("Not found"))
	})

	return r
}
