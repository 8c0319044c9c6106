package api

import (
	"time"

	"github.com/mathewgeejo/cinemabase/shared/domain"
)

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	AvatarUrl *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

func (r UpdateProfileRequest) ProfileUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{Name: r.Name, Bio: r.Bio, AvatarUrl: r.AvatarUrl}
}

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	Id        domain.UserId `json:"id"`
	Email     domain.Email  `json:"email"`
	Role      domain.Role   `json:"role"`
	Name      string        `json:"name"`
	Bio       string        `json:"bio"`
	AvatarUrl string        `json:"avatar_url"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		Id:        u.Id,
		Email:     u.Email,
		Role:      u.Role,
		Name:      u.Name,
		Bio:       u.Bio,
		AvatarUrl: u.AvatarUrl,
		CreatedAt: u.CreatedAt,
	}
}
