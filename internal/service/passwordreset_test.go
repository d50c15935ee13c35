package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/codekids/academy-api/internal/data"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/domain/ratelimit"
	"github.com/codekids/academy-api/internal/mocks"
	mockauth "github.com/codekids/academy-api/internal/mocks/auth"
)

func newPasswordResetService(t *testing.T, limiter *ratelimit.Limiter) (*mocks.MockUserRepository, *mockauth.MemoryResetTokenStore, *mockauth.CapturingEmailSender, *PasswordResetService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	tokens := mockauth.NewMemoryResetTokenStore()
	sender := &mockauth.CapturingEmailSender{}

	svc := NewPasswordResetService(PasswordResetServiceOptions{
		Users:   users,
		Tokens:  tokens,
		Email:   sender,
		Limiter: limiter,
	})
	return users, tokens, sender, svc
}

func TestPasswordResetService_Request_KnownEmail(t *testing.T) {
	t.Parallel()
	users, tokens, sender, svc := newPasswordResetService(t, ratelimit.New(3, 15*time.Minute))

	ctx := context.Background()
	users.EXPECT().GetByEmail(ctx, "parent@example.com").
		Return(&model.User{ID: "user-1", Email: "parent@example.com", FirstName: "Pat"}, nil)

	res, err := svc.Request(ctx, "  Parent@Example.COM ", "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, res.RateLimited)

	assert.Equal(t, 1, tokens.Len())
	mail, ok := sender.Last()
	require.True(t, ok)
	assert.Equal(t, "parent@example.com", mail.To)
	assert.Contains(t, mail.Subject, "Reset")
}

func TestPasswordResetService_Request_UnknownEmailLooksIdentical(t *testing.T) {
	t.Parallel()
	users, tokens, sender, svc := newPasswordResetService(t, ratelimit.New(3, 15*time.Minute))

	ctx := context.Background()
	users.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, data.ErrUserNotFound)

	res, err := svc.Request(ctx, "nobody@example.com", "203.0.113.7")
	require.NoError(t, err, "unknown addresses must not surface an error")
	assert.False(t, res.RateLimited)
	assert.Equal(t, 0, tokens.Len())
	_, sent := sender.Last()
	assert.False(t, sent)
}

func TestPasswordResetService_Request_RateLimited(t *testing.T) {
	t.Parallel()
	users, _, _, svc := newPasswordResetService(t, ratelimit.New(3, 15*time.Minute))

	ctx := context.Background()
	users.EXPECT().GetByEmail(ctx, "parent@example.com").
		Return(&model.User{ID: "user-1", Email: "parent@example.com"}, nil).
		Times(3)

	for i := 0; i < 3; i++ {
		res, err := svc.Request(ctx, "parent@example.com", "203.0.113.7")
		require.NoError(t, err)
		require.False(t, res.RateLimited, "request %d", i+1)
	}

	// Fourth attempt inside the window is refused without touching the repo.
	res, err := svc.Request(ctx, "parent@example.com", "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, res.RateLimited)
	assert.Greater(t, res.RetryIn, time.Duration(0))
}

func TestPasswordResetService_Request_LimitKeyedPerRequester(t *testing.T) {
	t.Parallel()
	users, _, _, svc := newPasswordResetService(t, ratelimit.New(1, 15*time.Minute))

	ctx := context.Background()
	users.EXPECT().GetByEmail(ctx, gomock.Any()).
		Return(&model.User{ID: "user-1", Email: "parent@example.com"}, nil).
		Times(2)

	res, err := svc.Request(ctx, "parent@example.com", "203.0.113.7")
	require.NoError(t, err)
	require.False(t, res.RateLimited)

	// Same email from a different IP has its own budget.
	res, err = svc.Request(ctx, "parent@example.com", "198.51.100.9")
	require.NoError(t, err)
	assert.False(t, res.RateLimited)

	// Same pair again is over budget.
	res, err = svc.Request(ctx, "parent@example.com", "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, res.RateLimited)
}

func TestPasswordResetService_Request_EmptyEmail(t *testing.T) {
	t.Parallel()
	_, _, _, svc := newPasswordResetService(t, ratelimit.New(3, 15*time.Minute))

	_, err := svc.Request(context.Background(), "   ", "203.0.113.7")
	assert.Error(t, err)
}
