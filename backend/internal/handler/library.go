package handler

import (
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

// AddToList handles POST /users/me/{list}/{movieId}.
func (h *Handler) AddToList(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	kind, err := parseListParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	movieId, err := parseIdParam(r, "movieId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.library.Add(r.Context(), p.Id, kind, movieId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.MessageResponse{Message: "Added to " + string(kind)})
}

// RemoveFromList handles DELETE /users/me/{list}/{movieId}. Always 200 for
// a well-formed request, member or not.
func (h *Handler) RemoveFromList(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	kind, err := parseListParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	movieId, err := parseIdParam(r, "movieId")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.library.Remove(r.Context(), p.Id, kind, movieId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.MessageResponse{Message: "Removed from " + string(kind)})
}

func (h *Handler) GetLists(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	library, err := h.library.Lists(r.Context(), p.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.LibraryResponse(library))
}
