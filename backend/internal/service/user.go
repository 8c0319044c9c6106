package service

import (
	"context"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
)

type UserService interface {
	Profile(ctx context.Context, id domain.UserId) (domain.User, error)
	UpdateProfile(ctx context.Context, id domain.UserId, update domain.ProfileUpdate) (domain.User, error)
}

type UserStorage interface {
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	UpdateProfile(ctx context.Context, id domain.UserId, update domain.ProfileUpdate) (domain.User, error)
}

type User struct {
	storage  UserStorage
	renderer *renderer
}

func NewUser(storage UserStorage) *User {
	return &User{storage: storage, renderer: newRenderer()}
}

func (u *User) Profile(ctx context.Context, id domain.UserId) (domain.User, error) {
	user, err := u.storage.UserById(ctx, id)
	if err != nil {
		return domain.User{}, storageError(err, "failed to load user", "Failed to load profile")
	}
	return user, nil
}

// UpdateProfile edits name, bio and avatar of the caller's own row only.
func (u *User) UpdateProfile(ctx context.Context, id domain.UserId, update domain.ProfileUpdate) (domain.User, error) {
	if update.Empty() {
		return domain.User{}, errors.Validation("Nothing to update")
	}
	if update.Name != nil {
		name := u.renderer.PlainText(*update.Name)
		update.Name = &name
	}
	if update.Bio != nil {
		bio := u.renderer.PlainText(*update.Bio)
		update.Bio = &bio
	}

	user, err := u.storage.UpdateProfile(ctx, id, update)
	if err != nil {
		return domain.User{}, storageError(err, "failed to update profile", "Failed to update profile")
	}
	return user, nil
}
