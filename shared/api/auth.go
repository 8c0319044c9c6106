package api

import (
	"time"

	"github.com/mathewgeejo/cinemabase/shared/domain"
)

// Request DTOs

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type SessionResponse struct {
	Token     string        `json:"token"`
	Id        domain.UserId `json:"id"`
	Role      domain.Role   `json:"role"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func NewSessionResponse(s domain.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		Id:        s.Principal.Id,
		Role:      s.Principal.Role,
		ExpiresAt: s.ExpiresAt,
	}
}

// Session converts the response back into the domain form used by clients.
func (r SessionResponse) Session() domain.Session {
	return domain.Session{
		Token:     r.Token,
		Principal: domain.Principal{Id: r.Id, Role: r.Role},
		ExpiresAt: r.ExpiresAt,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
