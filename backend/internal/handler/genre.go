package handler

import (
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genre.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, api.GenresResponse{Genres: genres})
}

func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	var body api.CreateGenreRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.genre.Create(r.Context(), body.Name)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, api.CreatedResponse{Id: id.String()})
}
