package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	jwt_internal "github.com/mathewgeejo/cinemabase/shared/jwt"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

// Revocations reports tokens whose holders signed out.
type Revocations interface {
	IsRevoked(tokenId string) bool
}

// Key to store the session claims in the request context
type key int

const sessionClaimsKey key = 0

// Auth gates requests on a valid session and, optionally, an exact role.
type Auth struct {
	jwtService  jwt_internal.JwtService
	revocations Revocations
}

func NewAuth(jwtService jwt_internal.JwtService, revocations Revocations) *Auth {
	return &Auth{
		jwtService:  jwtService,
		revocations: revocations,
	}
}

// RequireAuthenticated resolves the session carried by token.
func (a *Auth) RequireAuthenticated(token string) (domain.SessionClaims, error) {
	if token == "" {
		return domain.SessionClaims{}, internal_errors.Unauthorized("Please sign-in")
	}
	claims, err := a.jwtService.Verify(token)
	if err != nil {
		return domain.SessionClaims{}, err
	}
	if a.revocations != nil && a.revocations.IsRevoked(claims.TokenId) {
		return domain.SessionClaims{}, internal_errors.Unauthorized("Session signed out")
	}
	return claims, nil
}

// RequireRole is an exact match, there is no role hierarchy.
func RequireRole(principal domain.Principal, role domain.Role) error {
	if principal.Role != role {
		return internal_errors.Forbidden("Access denied. Only for " + string(role))
	}
	return nil
}

// NeedAuth returns middleware that requires any valid session.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(nil)
}

// NeedRole returns middleware that requires a valid session with exactly role.
func (a *Auth) NeedRole(role domain.Role) func(http.Handler) http.Handler {
	return a.auth(&role)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.NeedRole(domain.RoleAdmin)
}

func (a *Auth) auth(role *domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.RequireAuthenticated(BearerToken(r))
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			if role != nil {
				if err := RequireRole(claims.Principal, *role); err != nil {
					utils.WriteErrorAndStatusCode(w, err)
					return
				}
			}

			ctx := context.WithValue(r.Context(), sessionClaimsKey, &claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetClaimsFromContext retrieves the verified session from the context
func GetClaimsFromContext(r *http.Request) *domain.SessionClaims {
	claims, ok := r.Context().Value(sessionClaimsKey).(*domain.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

// GetPrincipalFromContext retrieves the principal from the context
func GetPrincipalFromContext(r *http.Request) *domain.Principal {
	claims := GetClaimsFromContext(r)
	if claims == nil {
		return nil
	}
	return &claims.Principal
}

// WithClaims stores claims in ctx the way the auth middleware does.
func WithClaims(ctx context.Context, claims domain.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionClaimsKey, &claims)
}
