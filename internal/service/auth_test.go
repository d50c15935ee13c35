package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/mocks"
	mockauth "github.com/codekids/academy-api/internal/mocks/auth"
	"github.com/codekids/academy-api/internal/ports"
)

func newAuthService(t *testing.T, mapper ports.RoleMapper) (*mockauth.MockAuthProvider, *mockauth.MemorySessionStore, *mocks.MockUserRepository, *AuthService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	provider := mockauth.NewMockAuthProvider()
	sessions := mockauth.NewMemorySessionStore()
	users := mocks.NewMockUserRepository(ctrl)

	svc := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		Roles:    mapper,
		Users:    users,
	})
	return provider, sessions, users, svc
}

func TestAuthService_BeginLogin(t *testing.T) {
	t.Parallel()
	_, _, _, svc := newAuthService(t, mockauth.FixedRoleMapper(domainauth.RoleParent))

	res, err := svc.BeginLogin(context.Background(), "https://academy.example.com/auth/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AuthURL)
	assert.NotEmpty(t, res.State)
	assert.NotEmpty(t, res.Nonce)
}

func TestAuthService_BeginLogin_RequiresRedirect(t *testing.T) {
	t.Parallel()
	_, _, _, svc := newAuthService(t, mockauth.FixedRoleMapper(domainauth.RoleParent))

	_, err := svc.BeginLogin(context.Background(), "")
	assert.Error(t, err)
}

func TestAuthService_CompleteLogin_UpsertsUserAndPersistsSession(t *testing.T) {
	t.Parallel()
	_, sessions, users, svc := newAuthService(t, mockauth.FixedRoleMapper(domainauth.RoleParent))

	ctx := context.Background()
	users.EXPECT().
		Upsert(ctx, gomock.Cond(func(req *model.UpsertUserRequest) bool {
			return req.Subject == "mock-subject-1" && req.Role == domainauth.RoleParent
		})).
		Return(&model.User{
			ID:      "user-db-1",
			Subject: "mock-subject-1",
			Email:   "mock.parent@example.com",
			Role:    domainauth.RoleParent,
		}, nil)

	res, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "code", State: "state", Nonce: "nonce"})
	require.NoError(t, err)
	assert.Equal(t, "user-db-1", res.Session.UserID, "session carries our account ID, not the IdP subject")
	assert.Equal(t, domainauth.RoleParent, res.Session.Role)

	stored, err := sessions.Get(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Session, stored)
}

func TestAuthService_CompleteLogin_NoRoleMappingRejected(t *testing.T) {
	t.Parallel()
	_, sessions, _, svc := newAuthService(t, mockauth.FixedRoleMapper(""))

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "code", State: "state", Nonce: "nonce"})
	assert.ErrorIs(t, err, ErrNoRoleMapping)

	// No session may be persisted for a rejected login.
	_, getErr := sessions.Get(context.Background(), "any")
	assert.Error(t, getErr)
}

func TestAuthService_CompleteLogin_ValidatesInput(t *testing.T) {
	t.Parallel()
	_, _, _, svc := newAuthService(t, mockauth.FixedRoleMapper(domainauth.RoleParent))

	ctx := context.Background()
	_, err := svc.CompleteLogin(ctx, CompleteLoginInput{State: "s", Nonce: "n"})
	assert.Error(t, err)
	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", Nonce: "n"})
	assert.Error(t, err)
	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s"})
	assert.Error(t, err)
}

func TestAuthService_GetSession_ExpiredIsDeleted(t *testing.T) {
	t.Parallel()
	_, sessions, _, svc := newAuthService(t, mockauth.FixedRoleMapper(domainauth.RoleParent))

	ctx := context.Background()
	expired := domainauth.Session{
		ID:        "expired-1",
		UserID:    "user-1",
		Role:      domainauth.RoleParent,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, sessions.Save(ctx, expired))

	_, err := svc.GetSession(ctx, "expired-1")
	require.Error(t, err)

	_, err = sessions.Get(ctx, "expired-1")
	assert.Error(t, err, "expired session is removed from the store")
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()
	_, sessions, users, svc := newAuthService(t, mockauth.FixedRoleMapper(domainauth.RoleStudent))

	ctx := context.Background()
	users.EXPECT().Upsert(ctx, gomock.Any()).
		Return(&model.User{ID: "user-db-2", Role: domainauth.RoleStudent}, nil)

	res, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "code", State: "state", Nonce: "nonce"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Session.ID))
	_, err = sessions.Get(ctx, res.Session.ID)
	assert.Error(t, err)

	// Logging out without a session is a no-op.
	assert.NoError(t, svc.Logout(ctx, ""))
}
