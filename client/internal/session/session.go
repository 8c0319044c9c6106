// Package session persists the CLI's last signed-in session between runs.
//
// The session is restored explicitly with LoadPersistedSession at startup and
// passed to every call that needs it. Nothing here is global.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/logger"
)

const fileName = "session.json"

type Store struct {
	path string
	now  func() time.Time
}

func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// DefaultPath is <user config dir>/cinemabase/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "cinemabase", fileName), nil
}

func (s *Store) Path() string {
	return s.path
}

// LoadPersistedSession returns the saved session, or nil when there is none.
// Expired or unreadable files are removed and treated as absent.
func (s *Store) LoadPersistedSession() (*domain.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var saved api.SessionResponse
	if err := json.Unmarshal(data, &saved); err != nil || saved.Token == "" || !saved.Role.Valid() {
		logger.Log.Debug("discarding malformed session file", "path", s.path)
		return nil, s.Clear()
	}
	if !s.now().Before(saved.ExpiresAt) {
		logger.Log.Debug("discarding expired session", "path", s.path, "expired_at", saved.ExpiresAt)
		return nil, s.Clear()
	}

	session := saved.Session()
	return &session, nil
}

// Save writes the session readable by the current user only.
func (s *Store) Save(session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.Marshal(api.NewSessionResponse(session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear forgets the saved session. Clearing nothing is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
