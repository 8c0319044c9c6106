package handler

import (
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

func (h *Handler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query, err := parseCatalogQuery(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	movies, err := h.movie.List(r.Context(), query)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.MoviesResponse{Movies: movies})
}

func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "movieId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	movie, err := h.movie.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, movie)
}

func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var body api.CreateMovieRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.movie.Create(r.Context(), body.CreationData())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, api.CreatedResponse{Id: id.String()})
}

func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "movieId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateMovieRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.movie.Update(r.Context(), id, body.UpdateData()); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.MessageResponse{Message: "Movie updated"})
}

func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := parseIdParam(r, "movieId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.movie.Delete(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.MessageResponse{Message: "Movie deleted"})
}
