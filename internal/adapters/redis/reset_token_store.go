package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a reset token does not exist or has expired.
var ErrTokenNotFound = errors.New("reset token not found")

// ResetTokenStore keeps password reset tokens in Redis with a TTL. The
// stored value is the email the token was issued for.
type ResetTokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewResetTokenStore creates a new Redis-based reset token store.
func NewResetTokenStore(client redis.UniversalClient) *ResetTokenStore {
	return &ResetTokenStore{
		client: client,
		prefix: "reset_token:",
	}
}

func (s *ResetTokenStore) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	return s.client.Set(ctx, s.prefix+token, email, ttl).Err()
}

// Consume atomically fetches and deletes the token so it can be used once.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenNotFound
	}

	email, err := s.client.GetDel(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("redis getdel: %w", err)
	}
	return email, nil
}
