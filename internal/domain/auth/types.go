package auth

// Package auth contains domain-level types for authentication, sessions,
// and authorization decisions. It is pure and free of framework/adapter
// concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupport    Role = "support"
	RoleInstructor Role = "instructor"
	RoleParent     Role = "parent"
	RoleStudent    Role = "student"
)

// ParseRole normalizes an untrusted role string (trims whitespace, lowers
// case) and validates it against the closed enumeration. Unrecognized
// values are rejected rather than defaulted.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSupport:
		return RoleSupport, true
	case RoleInstructor:
		return RoleInstructor, true
	case RoleParent:
		return RoleParent, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., samAccountName or sub)
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsStaff reports whether the session belongs to back-office staff.
func (s Session) IsStaff() bool {
	return s.Role == RoleAdmin || s.Role == RoleSupport
}
