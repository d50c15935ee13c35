package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codekids/academy-api/internal/core"
	"github.com/codekids/academy-api/internal/data"
	"github.com/codekids/academy-api/internal/domain/ratelimit"
	"github.com/codekids/academy-api/internal/ports"
)

// PasswordResetServiceOptions groups dependencies for PasswordResetService.
type PasswordResetServiceOptions struct {
	Users    core.UserRepository
	Tokens   ports.ResetTokenStore
	Email    ports.EmailSender
	Limiter  *ratelimit.Limiter
	TokenTTL time.Duration // default 1h when zero
}

// PasswordResetService issues single-use reset tokens by email. Requests
// are rate limited per requester, and the response never discloses whether
// an account exists.
type PasswordResetService struct {
	users    core.UserRepository
	tokens   ports.ResetTokenStore
	email    ports.EmailSender
	limiter  *ratelimit.Limiter
	tokenTTL time.Duration
}

// NewPasswordResetService constructs a new PasswordResetService.
func NewPasswordResetService(opts PasswordResetServiceOptions) *PasswordResetService {
	ttl := opts.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &PasswordResetService{
		users:    opts.Users,
		tokens:   opts.Tokens,
		email:    opts.Email,
		limiter:  opts.Limiter,
		tokenTTL: ttl,
	}
}

// RequestResult reports the outcome of a reset request. When RateLimited is
// true, RetryIn says how long the caller must wait.
type RequestResult struct {
	RateLimited bool
	RetryIn     time.Duration
}

// Request handles one reset attempt. The limiter key combines the
// normalized email and the client IP so one address cannot burn another
// address's budget from afar. Unknown emails take the same code path as
// known ones apart from issuing a token.
func (s *PasswordResetService) Request(ctx context.Context, email, clientIP string) (RequestResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return RequestResult{}, errors.New("email is required")
	}

	res := s.limiter.Check(email + "|" + clientIP)
	if !res.Allowed {
		return RequestResult{RateLimited: true, RetryIn: res.ResetIn}, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			// Pretend success; responding differently would leak which
			// addresses have accounts.
			return RequestResult{}, nil
		}
		return RequestResult{}, fmt.Errorf("look up account: %w", err)
	}

	token := uuid.NewString()
	if saveErr := s.tokens.Save(ctx, token, user.Email, s.tokenTTL); saveErr != nil {
		return RequestResult{}, fmt.Errorf("save reset token: %w", saveErr)
	}

	mail := ports.Mail{
		To:      user.Email,
		Subject: "Reset your Academy password",
		Body: fmt.Sprintf(
			"Hi %s,\n\nUse this token to reset your password within %s: %s\n\nIf you didn't ask for this, ignore this message.",
			user.FirstName, s.tokenTTL, token,
		),
	}
	if sendErr := s.email.Send(ctx, mail); sendErr != nil {
		return RequestResult{}, fmt.Errorf("send reset mail: %w", sendErr)
	}

	return RequestResult{}, nil
}
