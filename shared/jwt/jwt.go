package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/mathewgeejo/cinemabase/shared/logger"
)

// JwtService issues and verifies self-contained session tokens.
type JwtService interface {
	Issue(subject domain.UserId, role domain.Role) (domain.Session, error)
	Verify(token string) (domain.SessionClaims, error)
}

// Claims is the token payload: sub, jti, iat, exp plus the role.
type Claims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

func (j *Jwt) TTL() time.Duration {
	return j.ttl
}

func (j *Jwt) Issue(subject domain.UserId, role domain.Role) (domain.Session, error) {
	if !role.Valid() {
		return domain.Session{}, internal_errors.Validation("Unknown role")
	}
	now := j.now()
	expiresAt := now.Add(j.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return domain.Session{}, internal_errors.Internal("Can't create token")
	}

	return domain.Session{
		Token:     tokenString,
		Principal: domain.Principal{Id: subject, Role: role},
		ExpiresAt: expiresAt.Truncate(time.Second),
	}, nil
}

// Verify fails with Unauthorized on a bad signature, malformed structure or
// expiry. There is no renewal, an expired session must sign in again.
func (j *Jwt) Verify(tokenString string) (domain.SessionClaims, error) {
	invalid := internal_errors.Unauthorized("Invalid token")

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !token.Valid {
		logger.Log.Debug("token verification failed", "error", err)
		return domain.SessionClaims{}, invalid
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil || !claims.Role.Valid() || claims.ID == "" {
		return domain.SessionClaims{}, invalid
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return domain.SessionClaims{
		Principal: domain.Principal{Id: subject, Role: claims.Role},
		TokenId:   claims.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
