package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/auth"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/config"
	apperrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

type authFixture struct {
	store    *store.Store
	auth     *AuthService
	sessions *SessionService
	instance *InstanceService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	s := newTestStore(t)
	log := testLogger().Logger

	tokens, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	instanceSvc := NewInstanceService(s, log, &config.Config{})
	_, err = instanceSvc.InitializeInstance(context.Background())
	require.NoError(t, err)

	sessionSvc := NewSessionService(s, tokens, log)
	authSvc := NewAuthService(s, tokens, sessionSvc, instanceSvc, log)

	return &authFixture{
		store:    s,
		auth:     authSvc,
		sessions: sessionSvc,
		instance: instanceSvc,
	}
}

func validSetupRequest() SetupRequest {
	return SetupRequest{
		Email:       "kamila@example.com",
		Password:    "correct horse battery",
		DisplayName: "Kamila",
	}
}

func TestAuthService_Setup(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	required, err := fx.instance.IsSetupRequired(ctx)
	require.NoError(t, err)
	require.True(t, required)

	resp, err := fx.auth.Setup(ctx, validSetupRequest())
	require.NoError(t, err)
	assert.True(t, resp.User.IsRoot)
	assert.Equal(t, "kamila@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)

	required, err = fx.instance.IsSetupRequired(ctx)
	require.NoError(t, err)
	assert.False(t, required)

	t.Run("second setup rejected", func(t *testing.T) {
		_, err := fx.auth.Setup(ctx, validSetupRequest())
		assert.True(t, apperrors.Is(err, apperrors.ErrAlreadyConfigured))
	})

	t.Run("short password rejected", func(t *testing.T) {
		req := validSetupRequest()
		req.Password = "short"
		_, err := fx.auth.Setup(ctx, req)
		assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	})
}

func TestAuthService_Login(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	_, err := fx.auth.Setup(ctx, validSetupRequest())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := fx.auth.Login(ctx, LoginRequest{
			Email:    "kamila@example.com",
			Password: "correct horse battery",
			DeviceInfo: auth.DeviceInfo{
				DeviceName: "Kamila's Phone",
				ClientName: "FitBot iOS",
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		sessions, err := fx.sessions.ListUserSessions(ctx, resp.User.ID)
		require.NoError(t, err)
		require.Len(t, sessions, 2, "setup session plus login session")
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := fx.auth.Login(ctx, LoginRequest{
			Email:    "kamila@example.com",
			Password: "wrong password!",
		})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := fx.auth.Login(ctx, LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever it is",
		})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	})
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	resp, err := fx.auth.Setup(ctx, validSetupRequest())
	require.NoError(t, err)

	user, claims, err := fx.auth.VerifyAccessToken(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.True(t, claims.IsRoot)

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := fx.auth.VerifyAccessToken(ctx, "v4.local.not-a-real-token")
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("tampered token", func(t *testing.T) {
		tampered := strings.Replace(resp.AccessToken, "a", "b", 1)
		_, _, err := fx.auth.VerifyAccessToken(ctx, tampered)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})
}

func TestAuthService_RefreshRotation(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	setup, err := fx.auth.Setup(ctx, validSetupRequest())
	require.NoError(t, err)

	refreshed, err := fx.auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: setup.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, setup.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, setup.SessionID, refreshed.SessionID, "rotation keeps the session")

	t.Run("old refresh token is dead", func(t *testing.T) {
		_, err := fx.auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: setup.RefreshToken})
		assert.True(t, apperrors.Is(err, apperrors.ErrTokenExpired))
	})

	t.Run("logout revokes the session", func(t *testing.T) {
		require.NoError(t, fx.auth.Logout(ctx, refreshed.SessionID))
		_, err := fx.auth.RefreshTokens(ctx, RefreshRequest{RefreshToken: refreshed.RefreshToken})
		assert.True(t, apperrors.Is(err, apperrors.ErrTokenExpired))
	})
}

func TestSessionService_DeleteExpiredSessions(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	resp, err := fx.auth.Setup(ctx, validSetupRequest())
	require.NoError(t, err)

	// Force the session into the past.
	sessions, err := fx.sessions.ListUserSessions(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	sessions[0].ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, fx.store.Sessions.Update(ctx, sessions[0].ID, sessions[0]))

	removed, err := fx.sessions.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	remaining, err := fx.sessions.ListUserSessions(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
