package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/testutil"
)

func TestSessionStore_Integration_SaveGetDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() {
		if err := client.Close(); err != nil {
			t.Logf("redis close failed: %v", err)
		}
	}()

	store := NewSessionStoreWithPrefix(client, "test:session:")
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-abc123",
		UserID:    "user-1",
		FirstName: "Pat",
		LastName:  "Jones",
		Email:     "pat@example.com",
		Role:      domainauth.RoleParent,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Role, got.Role)
	assert.Equal(t, sess.Email, got.Email)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Integration_RejectsExpiredSession(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() {
		if err := client.Close(); err != nil {
			t.Logf("redis close failed: %v", err)
		}
	}()

	store := NewSessionStoreWithPrefix(client, "test:session:")
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{
		ID:        "sess-expired",
		UserID:    "user-1",
		Role:      domainauth.RoleStudent,
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err, "saving an already-expired session should fail")

	_, err = store.Get(ctx, "sess-expired")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Integration_TTLMatchesExpiry(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() {
		if err := client.Close(); err != nil {
			t.Logf("redis close failed: %v", err)
		}
	}()

	store := NewSessionStoreWithPrefix(client, "test:session:")
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-ttl",
		UserID:    "user-1",
		Role:      domainauth.RoleInstructor,
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, store.Save(ctx, sess))

	ttl, err := client.TTL(ctx, "test:session:sess-ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestResetTokenStore_Integration_SaveConsumeOnce(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() {
		if err := client.Close(); err != nil {
			t.Logf("redis close failed: %v", err)
		}
	}()

	store := NewResetTokenStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", "pat@example.com", time.Hour))

	email, err := store.Consume(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "pat@example.com", email)

	// Consume is single-use.
	_, err = store.Consume(ctx, "tok-1")
	require.ErrorIs(t, err, ErrTokenNotFound)

	_, err = store.Consume(ctx, "tok-never-issued")
	require.ErrorIs(t, err, ErrTokenNotFound)
}

func TestResetTokenStore_Integration_RejectsBadInput(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() {
		if err := client.Close(); err != nil {
			t.Logf("redis close failed: %v", err)
		}
	}()

	store := NewResetTokenStore(client)
	ctx := context.Background()

	require.Error(t, store.Save(ctx, "", "pat@example.com", time.Hour))
	require.Error(t, store.Save(ctx, "tok-2", "pat@example.com", 0))

	_, err := store.Consume(ctx, "")
	require.ErrorIs(t, err, ErrTokenNotFound)
}
