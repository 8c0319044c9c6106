package handler

import (
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
	mw "github.com/mathewgeejo/cinemabase/shared/middleware"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	session, err := h.auth.Register(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password}, body.Role)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSONStatus(w, http.StatusCreated, api.NewSessionResponse(session))
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var body api.SigninRequest
	// any malformed sign-in is answered like a wrong password
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, errors.Unauthorized("Invalid credentials"))
		return
	}

	session, err := h.auth.Authenticate(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.NewSessionResponse(session))
}

// Signout revokes the presented token. Requires the auth middleware.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	claims := mw.GetClaimsFromContext(r)
	if claims == nil {
		utils.WriteErrorAndStatusCode(w, errors.Unauthorized("Please sign-in"))
		return
	}

	if err := h.auth.Logout(r.Context(), *claims); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, api.MessageResponse{Message: "Signed out"})
}
