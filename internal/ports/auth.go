package ports

// Package ports defines interfaces (hexagonal ports) for behavior provided
// by the outside world. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/codekids/academy-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper maps provider groups to application roles. An empty role means
// no mapping matched; callers must treat that as a failed login rather than
// defaulting.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

// ResetTokenStore persists short-lived password reset tokens keyed by token
// value.
type ResetTokenStore interface {
	Save(ctx context.Context, token, email string, ttl time.Duration) error
	// Consume returns the email a token was issued for and deletes it.
	Consume(ctx context.Context, token string) (string, error)
}
