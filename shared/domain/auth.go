package domain

import "time"

type Credentials struct {
	Email    Email
	Password Password
}

// Session is what a successful sign-up or sign-in hands back to the caller.
type Session struct {
	Token     string
	Principal Principal
	ExpiresAt time.Time
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	Principal Principal
	TokenId   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
