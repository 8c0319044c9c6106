package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/domain"
	internal_errors "github.com/mathewgeejo/cinemabase/shared/errors"
	"github.com/mathewgeejo/cinemabase/shared/middleware/ratelimiter"
	"github.com/mathewgeejo/cinemabase/shared/utils"
)

var errRateLimited = &internal_errors.ErrorWithStatusCode{
	Message:    "Rate limit exceeded, try again later",
	StatusCode: http.StatusTooManyRequests,
}

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if principal := GetPrincipalFromContext(r); principal != nil && principal.Role == domain.RoleAdmin { // disable for admin
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				utils.WriteErrorAndStatusCode(w, errRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.UserRateLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetPrincipalKey keys limits by signed-in user. Needs the auth middleware first.
func GetPrincipalKey(r *http.Request) (string, error) {
	principal := GetPrincipalFromContext(r)
	if principal == nil {
		return "", internal_errors.Unauthorized("Please sign-in")
	}
	return "user_" + principal.Id.String(), nil
}

// GetIP extracts the client IP from RemoteAddr.
// X-Real-IP and X-Forwarded-For are not trusted.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", internal_errors.Validation(fmt.Sprintf("invalid IP address: %s", ip))
	}
	return ip, nil
}
