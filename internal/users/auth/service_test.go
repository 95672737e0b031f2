// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadex-platform/acadex/internal/platform/apperr"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/users/auth"
)

// # Test Doubles

type memoryUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*auth.User{}}
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

type memorySessionRepository struct {
	sessions map[string]*auth.Session // keyed by ID
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{sessions: map[string]*auth.Session{}}
}

func (r *memorySessionRepository) Create(_ context.Context, session *auth.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *memorySessionRepository) FindActiveByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	for _, session := range r.sessions {
		if session.TokenHash == tokenHash && session.IsActive(time.Now()) {
			return session, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

func (r *memorySessionRepository) Revoke(_ context.Context, sessionID string) error {
	if session, ok := r.sessions[sessionID]; ok && session.RevokedAt == nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *memorySessionRepository) RevokeAll(_ context.Context, userID string) error {
	now := time.Now()
	for _, session := range r.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *memorySessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	now := time.Now()
	for _, session := range r.sessions {
		if session.UserID == userID && session.ID != currentSessionID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r *memorySessionRepository) DeleteExpired(_ context.Context) error {
	return nil
}

func (r *memorySessionRepository) activeCount(userID string) int {
	count := 0
	for _, session := range r.sessions {
		if session.UserID == userID && session.IsActive(time.Now()) {
			count++
		}
	}
	return count
}

type memoryResetTokenRepository struct {
	tokens map[string]string // token -> userID
}

func newMemoryResetTokenRepository() *memoryResetTokenRepository {
	return &memoryResetTokenRepository{tokens: map[string]string{}}
}

func (r *memoryResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	r.tokens[token] = userID
	return nil
}

func (r *memoryResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := r.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (r *memoryResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

type stubTokenProvider struct {
	calls int
}

func (p *stubTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	p.calls++
	return fmt.Sprintf("access-%s-%d", userID, p.calls), nil
}

// # Fixtures

type serviceFixture struct {
	service  *auth.Service
	users    *memoryUserRepository
	sessions *memorySessionRepository
	resets   *memoryResetTokenRepository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	users := newMemoryUserRepository()
	sessions := newMemorySessionRepository()
	resets := newMemoryResetTokenRepository()

	return &serviceFixture{
		service:  auth.NewService(users, sessions, resets, &stubTokenProvider{}),
		users:    users,
		sessions: sessions,
		resets:   resets,
	}
}

func (f *serviceFixture) registerUser(t *testing.T, username, email, password string) *auth.User {
	t.Helper()

	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		FullName: "Test Member",
	})
	require.NoError(t, err)
	return user
}

// # Registration

/*
TestService_Register verifies account creation and identity uniqueness.
*/
func TestService_Register(t *testing.T) {
	fixture := newServiceFixture(t)

	user := fixture.registerUser(t, "omar", "omar@acadex.app", "strong-password")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "strong-password", user.PasswordHash, "password must never be stored in plain text")

	t.Run("duplicate_email", func(t *testing.T) {
		_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
			Username: "someone_else",
			Email:    "omar@acadex.app",
			Password: "strong-password",
			FullName: "Other",
		})
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)
	})

	t.Run("duplicate_username", func(t *testing.T) {
		_, err := fixture.service.Register(context.Background(), auth.RegisterInput{
			Username: "omar",
			Email:    "other@acadex.app",
			Password: "strong-password",
			FullName: "Other",
		})
		require.Error(t, err)
		assert.Equal(t, 409, apperr.As(err).HTTPStatus)
	})
}

// # Login

/*
TestService_Login_FailureIndistinguishable checks that unknown users, wrong
passwords, and deactivated accounts all fail with the exact same message so
the endpoint cannot be used for account enumeration.
*/
func TestService_Login_FailureIndistinguishable(t *testing.T) {
	fixture := newServiceFixture(t)
	user := fixture.registerUser(t, "sara", "sara@acadex.app", "correct-password")

	inactive := fixture.registerUser(t, "idle", "idle@acadex.app", "correct-password")
	inactive.IsActive = false

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{"unknown_user", "nobody", "correct-password"},
		{"wrong_password", "sara", "wrong-password"},
		{"deactivated_account", "idle", "correct-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.service.Login(context.Background(), auth.LoginInput{
				Login:    tt.login,
				Password: tt.password,
			})

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, 401, ae.HTTPStatus)
			assert.Equal(t, auth.MsgInvalidCredentials, ae.Message)
		})
	}

	t.Run("success_by_username", func(t *testing.T) {
		session, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "sara",
			Password: "correct-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Equal(t, user.ID, session.User.ID)
	})

	t.Run("success_by_email", func(t *testing.T) {
		session, err := fixture.service.Login(context.Background(), auth.LoginInput{
			Login:    "sara@acadex.app",
			Password: "correct-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.RefreshToken)
	})
}

// # Rotation

/*
TestService_RefreshSession_Rotation exercises the refresh token rotation
protocol: a used token is revoked before its replacement is issued, and
presenting it a second time yields an authentication failure.
*/
func TestService_RefreshSession_Rotation(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.registerUser(t, "nour", "nour@acadex.app", "correct-password")

	login, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Login:    "nour",
		Password: "correct-password",
	})
	require.NoError(t, err)

	rotated, err := fixture.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken, "rotation must mint a fresh refresh token")

	t.Run("replayed_token_rejected", func(t *testing.T) {
		_, err := fixture.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, auth.MsgInvalidSession, ae.Message)
	})

	t.Run("rotated_token_still_valid", func(t *testing.T) {
		_, err := fixture.service.RefreshSession(context.Background(), rotated.RefreshToken, "ua", "127.0.0.1")
		require.NoError(t, err)
	})

	t.Run("garbage_token_rejected", func(t *testing.T) {
		_, err := fixture.service.RefreshSession(context.Background(), "not-a-real-token", "ua", "127.0.0.1")
		require.Error(t, err)
		assert.Equal(t, 401, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_RefreshSession_DeactivatedUser verifies that deactivating an
account breaks its rotation chain even when the refresh token itself is
still unrevoked and unexpired.
*/
func TestService_RefreshSession_DeactivatedUser(t *testing.T) {
	fixture := newServiceFixture(t)
	user := fixture.registerUser(t, "rami", "rami@acadex.app", "correct-password")

	login, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Login:    "rami",
		Password: "correct-password",
	})
	require.NoError(t, err)

	user.IsActive = false

	_, err = fixture.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.Error(t, err)
	assert.Equal(t, 401, apperr.As(err).HTTPStatus)
}

// # Revocation

/*
TestService_Logout_Idempotent checks that logout (and the revoke operation
that shares its semantics) always succeeds, no matter the token's state.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.registerUser(t, "lina", "lina@acadex.app", "correct-password")

	login, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Login:    "lina",
		Password: "correct-password",
	})
	require.NoError(t, err)

	require.NoError(t, fixture.service.Logout(context.Background(), login.RefreshToken))

	// Second logout with the same (now revoked) token is still a success.
	require.NoError(t, fixture.service.Logout(context.Background(), login.RefreshToken))

	// Unknown tokens are a no-op too.
	require.NoError(t, fixture.service.Logout(context.Background(), "never-issued"))

	// The revoked token can no longer rotate.
	_, err = fixture.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "127.0.0.1")
	require.Error(t, err)

	t.Run("revoke_alias", func(t *testing.T) {
		require.NoError(t, fixture.service.RevokeToken(context.Background(), "never-issued"))
	})
}

// # Password Lifecycle

/*
TestService_ChangePassword covers current-password verification and the
revoke-other-devices side effect.
*/
func TestService_ChangePassword(t *testing.T) {
	fixture := newServiceFixture(t)
	user := fixture.registerUser(t, "hadi", "hadi@acadex.app", "old-password")

	first, err := fixture.service.Login(context.Background(), auth.LoginInput{Login: "hadi", Password: "old-password"})
	require.NoError(t, err)
	_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "hadi", Password: "old-password"})
	require.NoError(t, err)
	require.Equal(t, 2, fixture.sessions.activeCount(user.ID))

	t.Run("wrong_current_password", func(t *testing.T) {
		err := fixture.service.ChangePassword(context.Background(), user.ID, "not-the-password", "new-password", first.RefreshToken)
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, auth.MsgWrongCurrentPass, ae.Message)
	})

	t.Run("success_revokes_other_sessions", func(t *testing.T) {
		err := fixture.service.ChangePassword(context.Background(), user.ID, "old-password", "new-password", first.RefreshToken)
		require.NoError(t, err)

		assert.Equal(t, 1, fixture.sessions.activeCount(user.ID), "only the current session survives")

		_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "hadi", Password: "old-password"})
		require.Error(t, err)
		_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "hadi", Password: "new-password"})
		require.NoError(t, err)
	})
}

/*
TestService_PasswordReset walks the forgot-password flow end to end:
token issuance, consumption, session cleanup, and replay rejection.
*/
func TestService_PasswordReset(t *testing.T) {
	fixture := newServiceFixture(t)
	user := fixture.registerUser(t, "dana", "dana@acadex.app", "old-password")

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{Login: "dana", Password: "old-password"})
	require.NoError(t, err)

	t.Run("unknown_email_no_token_no_error", func(t *testing.T) {
		token, err := fixture.service.RequestPasswordReset(context.Background(), "ghost@acadex.app")
		require.NoError(t, err)
		assert.Empty(t, token)
	})

	token, err := fixture.service.RequestPasswordReset(context.Background(), "dana@acadex.app")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("invalid_token", func(t *testing.T) {
		err := fixture.service.ResetPassword(context.Background(), "bogus", "new-password")
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 401, ae.HTTPStatus)
		assert.Equal(t, auth.MsgInvalidResetToken, ae.Message)
	})

	require.NoError(t, fixture.service.ResetPassword(context.Background(), token, "new-password"))

	// All sessions are revoked after a reset.
	assert.Equal(t, 0, fixture.sessions.activeCount(user.ID))

	// The token is single-use.
	err = fixture.service.ResetPassword(context.Background(), token, "another-password")
	require.Error(t, err)

	_, err = fixture.service.Login(context.Background(), auth.LoginInput{Login: "dana", Password: "new-password"})
	require.NoError(t, err)
}
