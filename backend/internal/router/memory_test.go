package router

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
)

// memoryStore mirrors the postgres store closely enough to drive the full
// HTTP stack in tests: unique emails and genre names, FK-style not found
// errors, one watch status per (user, movie) and cascading deletes.
type memoryStore struct {
	mu      sync.Mutex
	users   map[domain.UserId]domain.User
	genres  map[domain.GenreId]domain.Genre
	movies  map[domain.MovieId]domain.Movie
	order   []domain.MovieId
	sets    map[domain.UserId]map[domain.ListKind]map[domain.MovieId]bool
	status  map[domain.UserId]map[domain.MovieId]domain.WatchStatus
	revoked map[string]time.Time
	pingErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:   make(map[domain.UserId]domain.User),
		genres:  make(map[domain.GenreId]domain.Genre),
		movies:  make(map[domain.MovieId]domain.Movie),
		sets:    make(map[domain.UserId]map[domain.ListKind]map[domain.MovieId]bool),
		status:  make(map[domain.UserId]map[domain.MovieId]domain.WatchStatus),
		revoked: make(map[string]time.Time),
	}
}

func (m *memoryStore) Ping(ctx context.Context) error { return m.pingErr }
func (m *memoryStore) Cleanup() error                 { return nil }

func (m *memoryStore) SaveUser(ctx context.Context, user domain.User) (domain.UserId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(user.Email) {
			return uuid.Nil, internal_errors.Conflict("Email already registered")
		}
	}
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	m.users[user.Id] = user
	return user.Id, nil
}

func (m *memoryStore) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return domain.User{}, internal_errors.NotFound("User not found")
}

func (m *memoryStore) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, internal_errors.NotFound("User not found")
	}
	return u, nil
}

func (m *memoryStore) UpdateProfile(ctx context.Context, id domain.UserId, update domain.ProfileUpdate) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, internal_errors.NotFound("User not found")
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.AvatarUrl != nil {
		u.AvatarUrl = *update.AvatarUrl
	}
	m.users[id] = u
	return u, nil
}

func (m *memoryStore) RevokeSession(ctx context.Context, tokenId string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenId] = expiresAt
	return nil
}

func (m *memoryStore) ActiveRevocations(ctx context.Context, now time.Time) (map[string]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]time.Time)
	for id, exp := range m.revoked {
		if exp.After(now) {
			out[id] = exp
		}
	}
	return out, nil
}

func (m *memoryStore) CreateGenre(ctx context.Context, name string) (domain.GenreId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.genres {
		if g.Name == name {
			return uuid.Nil, internal_errors.Conflict("Genre already exists")
		}
	}
	g := domain.Genre{Id: uuid.New(), Name: name}
	m.genres[g.Id] = g
	return g.Id, nil
}

func (m *memoryStore) Genres(ctx context.Context) ([]domain.Genre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Genre, 0, len(m.genres))
	for _, g := range m.genres {
		out = append(out, g)
	}
	return out, nil
}

func (m *memoryStore) resolveGenres(ids []domain.GenreId) ([]domain.Genre, error) {
	out := make([]domain.Genre, 0, len(ids))
	for _, id := range ids {
		g, ok := m.genres[id]
		if !ok {
			return nil, internal_errors.NotFound("Genre not found")
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *memoryStore) CreateMovie(ctx context.Context, data domain.MovieCreationData) (domain.MovieId, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	genres, err := m.resolveGenres(data.GenreIds)
	if err != nil {
		return uuid.Nil, err
	}
	movie := domain.Movie{
		Id:            uuid.New(),
		Title:         data.Title,
		Genres:        genres,
		Rate:          data.Rate,
		Description:   data.Description,
		TrailerLink:   data.TrailerLink,
		LengthMinutes: data.LengthMinutes,
		ImageUrl:      data.ImageUrl,
		CreatedAt:     time.Now(),
	}
	m.movies[movie.Id] = movie
	m.order = append(m.order, movie.Id)
	return movie.Id, nil
}

func (m *memoryStore) Movie(ctx context.Context, id domain.MovieId) (domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return domain.Movie{}, internal_errors.NotFound("Movie not found")
	}
	return movie, nil
}

func (m *memoryStore) Movies(ctx context.Context) ([]domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Movie, 0, len(m.order))
	for _, id := range m.order {
		if movie, ok := m.movies[id]; ok {
			out = append(out, movie)
		}
	}
	return out, nil
}

func (m *memoryStore) UpdateMovie(ctx context.Context, id domain.MovieId, data domain.MovieUpdateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	movie, ok := m.movies[id]
	if !ok {
		return internal_errors.NotFound("Movie not found")
	}
	if data.GenreIds != nil {
		genres, err := m.resolveGenres(*data.GenreIds)
		if err != nil {
			return err
		}
		movie.Genres = genres
	}
	if data.Title != nil {
		movie.Title = *data.Title
	}
	if data.Rate != nil {
		movie.Rate = *data.Rate
	}
	if data.Description != nil {
		movie.Description = *data.Description
	}
	if data.TrailerLink != nil {
		movie.TrailerLink = *data.TrailerLink
	}
	if data.LengthMinutes != nil {
		movie.LengthMinutes = *data.LengthMinutes
	}
	if data.ImageUrl != nil {
		movie.ImageUrl = *data.ImageUrl
	}
	m.movies[id] = movie
	return nil
}

func (m *memoryStore) DeleteMovie(ctx context.Context, id domain.MovieId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[id]; !ok {
		return internal_errors.NotFound("Movie not found")
	}
	delete(m.movies, id)
	for _, lists := range m.sets {
		for _, set := range lists {
			delete(set, id)
		}
	}
	for _, statuses := range m.status {
		delete(statuses, id)
	}
	return nil
}

func (m *memoryStore) userSets(userId domain.UserId) map[domain.ListKind]map[domain.MovieId]bool {
	if _, ok := m.sets[userId]; !ok {
		m.sets[userId] = map[domain.ListKind]map[domain.MovieId]bool{
			domain.Wishlist:  {},
			domain.Bookmarks: {},
		}
		m.status[userId] = make(map[domain.MovieId]domain.WatchStatus)
	}
	return m.sets[userId]
}

func (m *memoryStore) AddToList(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[movieId]; !ok {
		return internal_errors.NotFound("Movie not found")
	}
	m.userSets(userId)[kind][movieId] = true
	return nil
}

func (m *memoryStore) RemoveFromList(ctx context.Context, userId domain.UserId, kind domain.ListKind, movieId domain.MovieId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userSets(userId)[kind], movieId)
	return nil
}

func (m *memoryStore) SetWatchStatus(ctx context.Context, userId domain.UserId, movieId domain.MovieId, status domain.WatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.movies[movieId]; !ok {
		return internal_errors.NotFound("Movie not found")
	}
	m.userSets(userId)
	m.status[userId][movieId] = status
	return nil
}

func (m *memoryStore) ClearWatchStatus(ctx context.Context, userId domain.UserId, movieId domain.MovieId, status domain.WatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userSets(userId)
	if m.status[userId][movieId] == status {
		delete(m.status[userId], movieId)
	}
	return nil
}

func (m *memoryStore) Library(ctx context.Context, userId domain.UserId) (domain.Library, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sets := m.userSets(userId)
	lib := domain.NewLibrary()
	for _, kind := range []domain.ListKind{domain.Wishlist, domain.Bookmarks} {
		for id := range sets[kind] {
			lib.Append(kind, m.movies[id])
		}
	}
	for id, status := range m.status[userId] {
		lib.Append(domain.ListKind(status), m.movies[id])
	}
	return lib, nil
}
