package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/catalog"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
	mw "github.com/mathewgeejo/cinemabase/shared/middleware"
)

// parseIdParam reads a uuid path parameter.
func parseIdParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.UUID{}, errors.Validation("Invalid " + name)
	}
	return id, nil
}

func parseListParam(r *http.Request) (domain.ListKind, error) {
	kind, err := domain.ParseListKind(chi.URLParam(r, "list"))
	if err != nil {
		return "", errors.NotFound("Unknown list")
	}
	return kind, nil
}

// principal returns the caller resolved by the auth middleware.
func principal(r *http.Request) (domain.Principal, error) {
	p := mw.GetPrincipalFromContext(r)
	if p == nil {
		return domain.Principal{}, errors.Unauthorized("Please sign-in")
	}
	return *p, nil
}

// parseCatalogQuery reads ?search=&genre=&min_rating=.
func parseCatalogQuery(r *http.Request) (catalog.Query, error) {
	values := r.URL.Query()
	query := catalog.Query{
		Term:  values.Get("search"),
		Genre: values.Get("genre"),
	}
	if raw := values.Get("min_rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rating) || rating < 0 || rating > 10 {
			return catalog.Query{}, errors.Validation("min_rating must be a number between 0 and 10")
		}
		query.MinRating = rating
	}
	return query, nil
}
