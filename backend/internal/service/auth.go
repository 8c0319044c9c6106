package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/config"
	"github.com/mathewgeejo/cinemabase/shared/crypto"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	"github.com/mathewgeejo/cinemabase/shared/errors"
	jwt_internal "github.com/mathewgeejo/cinemabase/shared/jwt"
	"github.com/mathewgeejo/cinemabase/shared/logger"
	"github.com/mathewgeejo/cinemabase/shared/middleware/metrics"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials, role string) (domain.Session, error)
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	Logout(ctx context.Context, claims domain.SessionClaims) error
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.UserId, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	RevokeSession(ctx context.Context, tokenId string, expiresAt time.Time) error
}

// Revoker makes a signed-out token unusable before the next cache refresh.
type Revoker interface {
	Add(tokenId string, expiresAt time.Time)
}

type Auth struct {
	storage     AuthStorage
	hasher      crypto.PasswordHasher
	jwt         jwt_internal.JwtService
	revocations Revoker
	cfg         *config.Public
	dummyHash   string
}

// errInvalidCredentials is shared by "no such user" and "wrong password".
var errInvalidCredentials = errors.Unauthorized("Invalid credentials")

// NewAuth panics if the hasher cannot produce the dummy digest used for unknown emails.
func NewAuth(storage AuthStorage, hasher crypto.PasswordHasher, jwt jwt_internal.JwtService, revocations Revoker, cfg *config.Public) *Auth {
	// compared against on unknown emails so both failures cost one hash check
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		panic(fmt.Sprintf("failed to prepare dummy password hash: %v", err))
	}
	return &Auth{
		storage:     storage,
		hasher:      hasher,
		jwt:         jwt,
		revocations: revocations,
		cfg:         cfg,
		dummyHash:   dummyHash,
	}
}

// Register creates a user and signs them in. An empty role means user.
func (a *Auth) Register(ctx context.Context, creds domain.Credentials, role string) (session domain.Session, err error) {
	defer func() { metrics.AuthEvents.WithLabelValues("signup", metrics.Outcome(err)).Inc() }()

	email := normalizeEmail(creds.Email)
	if err := validateEmail(email); err != nil {
		return domain.Session{}, err
	}
	if err := a.validatePassword(creds.Password); err != nil {
		return domain.Session{}, err
	}
	parsedRole := domain.RoleUser
	if strings.TrimSpace(role) != "" {
		if parsedRole, err = domain.ParseRole(role); err != nil {
			return domain.Session{}, errors.Validation("Role must be one of: user, admin")
		}
	}

	passHash, err := a.hasher.Hash(creds.Password)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.Session{}, errors.Internal("Failed to register")
	}

	user := domain.User{Id: uuid.New(), Email: email, PassHash: passHash, Role: parsedRole}
	id, err := a.storage.SaveUser(ctx, user)
	if err != nil {
		if errors.IsDomain(err) {
			return domain.Session{}, err
		}
		logger.Log.Error("failed to save user", "error", err)
		return domain.Session{}, errors.Internal("Failed to register")
	}
	logger.Log.Info("user registered", "user_id", id, "role", parsedRole)

	return a.issue(id, parsedRole)
}

// Authenticate answers every failure with the same Unauthorized error so a
// caller cannot tell an unknown email from a wrong password.
func (a *Auth) Authenticate(ctx context.Context, creds domain.Credentials) (session domain.Session, err error) {
	defer func() { metrics.AuthEvents.WithLabelValues("signin", metrics.Outcome(err)).Inc() }()

	user, err := a.storage.UserByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		if errors.IsNotFound(err) {
			a.hasher.Verify(creds.Password, a.dummyHash)
			return domain.Session{}, errInvalidCredentials
		}
		logger.Log.Error("failed to look up user", "error", err)
		return domain.Session{}, errors.Internal("Failed to sign in")
	}
	if !a.hasher.Verify(creds.Password, user.PassHash) {
		return domain.Session{}, errInvalidCredentials
	}

	return a.issue(user.Id, user.Role)
}

// Logout denies the token until it expires on its own.
func (a *Auth) Logout(ctx context.Context, claims domain.SessionClaims) (err error) {
	defer func() { metrics.AuthEvents.WithLabelValues("signout", metrics.Outcome(err)).Inc() }()

	if claims.TokenId == "" {
		return errors.Unauthorized("Invalid token")
	}
	if err := a.storage.RevokeSession(ctx, claims.TokenId, claims.ExpiresAt); err != nil {
		logger.Log.Error("failed to revoke session", "user_id", claims.Principal.Id, "error", err)
		return errors.Internal("Failed to sign out")
	}
	if a.revocations != nil {
		a.revocations.Add(claims.TokenId, claims.ExpiresAt)
	}
	return nil
}

func (a *Auth) issue(id domain.UserId, role domain.Role) (domain.Session, error) {
	session, err := a.jwt.Issue(id, role)
	if err != nil {
		logger.Log.Error("failed to issue session", "user_id", id, "error", err)
		return domain.Session{}, errors.Internal("Failed to issue session")
	}
	return session, nil
}

func (a *Auth) validatePassword(password domain.Password) error {
	minLen := a.cfg.MinPasswordLen
	if minLen <= 0 {
		minLen = config.DefaultMinPasswordLen
	}
	if utf8.RuneCountInString(password) < minLen {
		return errors.Validation(fmt.Sprintf("Password must be at least %d characters", minLen))
	}
	if len(password) > crypto.MaxPasswordBytes {
		return errors.Validation(fmt.Sprintf("Password must be at most %d bytes", crypto.MaxPasswordBytes))
	}
	return nil
}

func normalizeEmail(email domain.Email) domain.Email {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email domain.Email) error {
	if err := utils.Validator().Var(email, "required,email"); err != nil {
		return errors.Validation("Invalid email")
	}
	return nil
}
