package pg

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newId() uuid.UUID { return uuid.New() }

func TestSaveUser(t *testing.T) {
	requireStorage(t)
	ctx := context.Background()

	user := domain.User{Id: newId(), Email: "Save@Example.com", PassHash: "hash", Role: domain.RoleAdmin}
	id, err := storage.SaveUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.Id, id)

	dup := domain.User{Id: newId(), Email: "save@example.COM", PassHash: "hash", Role: domain.RoleUser}
	_, err = storage.SaveUser(ctx, dup)
	require.Error(t, err, "email uniqueness is case-insensitive")
	assert.Equal(t, http.StatusConflict, internal_errors.StatusCode(err))
}

func TestUserByEmail(t *testing.T) {
	requireStorage(t)
	ctx := context.Background()
	created := createTestUser(t, "lookup@example.com")

	user, err := storage.UserByEmail(ctx, "LOOKUP@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.Id, user.Id)
	assert.Equal(t, "lookup@example.com", user.Email)
	assert.Equal(t, "hash", user.PassHash)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = storage.UserByEmail(ctx, "nonexistent@example.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
}

func TestUpdateProfile(t *testing.T) {
	requireStorage(t)
	ctx := context.Background()
	created := createTestUser(t, "profile@example.com")

	name, bio := "Ann", "Likes noir"
	user, err := storage.UpdateProfile(ctx, created.Id, domain.ProfileUpdate{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "Likes noir", user.Bio)
	assert.Equal(t, "", user.AvatarUrl)

	avatar := "https://img.example.com/a.png"
	user, err = storage.UpdateProfile(ctx, created.Id, domain.ProfileUpdate{AvatarUrl: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name, "nil fields are left as is")
	assert.Equal(t, avatar, user.AvatarUrl)

	_, err = storage.UpdateProfile(ctx, newId(), domain.ProfileUpdate{Name: &name})
	assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
}

func TestRevocations(t *testing.T) {
	requireStorage(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, storage.RevokeSession(ctx, "active-token", now.Add(time.Hour)))
	require.NoError(t, storage.RevokeSession(ctx, "active-token", now.Add(time.Hour)), "revoking twice is a no-op")
	require.NoError(t, storage.RevokeSession(ctx, "stale-token", now.Add(-time.Minute)))

	revoked, err := storage.ActiveRevocations(ctx, now)
	require.NoError(t, err)
	assert.Contains(t, revoked, "active-token")
	assert.NotContains(t, revoked, "stale-token")
	assert.WithinDuration(t, now.Add(time.Hour), revoked["active-token"], time.Second)
}
