package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is a closed set of capabilities. Roles are disjoint: admin does not
// imply user and user does not imply admin.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var Roles = []Role{RoleUser, RoleAdmin}

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	Id        UserId
	Email     Email
	PassHash  string
	Role      Role
	Name      string
	Bio       string
	AvatarUrl string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal is the lightweight identity carried by a session token.
type Principal struct {
	Id   UserId
	Role Role
}

// ProfileUpdate holds optional profile fields, nil means "leave as is".
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	AvatarUrl *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.AvatarUrl == nil
}
