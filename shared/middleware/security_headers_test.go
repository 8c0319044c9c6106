package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	t.Run("plain http with csp", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(false, APIContentSecurityPolicy)(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		assert.Equal(t, APIContentSecurityPolicy, rr.Header().Get("Content-Security-Policy"))
		assert.Empty(t, rr.Header().Get("Strict-Transport-Security"))
	})

	t.Run("https without csp", func(t *testing.T) {
		rr := httptest.NewRecorder()
		SecurityHeaders(true, "")(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, rr.Header().Get("Content-Security-Policy"))
	})
}
