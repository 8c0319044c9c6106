// Package cli implements the cinemabase command-line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/domain"
)

// Client is the subset of the API used by the commands.
type Client interface {
	Signup(ctx context.Context, email, password, role string) (domain.Session, error)
	Signin(ctx context.Context, email, password string) (domain.Session, error)
	Signout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (api.UserResponse, error)
	Movies(ctx context.Context) ([]domain.Movie, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	Lists(ctx context.Context, token string) (domain.Library, error)
	AddToList(ctx context.Context, token string, kind domain.ListKind, movieId domain.MovieId) error
	RemoveFromList(ctx context.Context, token string, kind domain.ListKind, movieId domain.MovieId) error
}

type SessionStore interface {
	LoadPersistedSession() (*domain.Session, error)
	Save(session domain.Session) error
	Clear() error
}

// App holds what every command needs. The client is built after flags are
// parsed so --api can point it anywhere.
type App struct {
	NewClient func(baseURL string) Client
	Sessions  SessionStore
	PageSize  int

	baseURL string
	client  Client
}

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errNotSignedIn = errors.New("not signed in, run `cinemabase signin` first")

// session restores the persisted session. Commands that need one call this
// explicitly instead of relying on shared state.
func (a *App) session() (domain.Session, error) {
	s, err := a.Sessions.LoadPersistedSession()
	if err != nil {
		return domain.Session{}, err
	}
	if s == nil {
		return domain.Session{}, errNotSignedIn
	}
	return *s, nil
}

// password returns flagValue, or prompts without echo when it is empty.
func password(flagValue string, w io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(pw)), nil
}
