package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

const testKeyHex = "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"

func testTokenService(t *testing.T, accessDuration time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testKeyHex, accessDuration, 30*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_BadKey(t *testing.T) {
	_, err := NewTokenService("too-short", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(strings.Repeat("z", 64), time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestAccessTokenRoundtrip(t *testing.T) {
	svc := testTokenService(t, 15*time.Minute)

	user := &domain.User{Email: "kamila@example.com", IsRoot: true}
	user.ID = "user-1"

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "kamila@example.com", claims.Email)
	assert.True(t, claims.IsRoot)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := testTokenService(t, -time.Minute)

	user := &domain.User{Email: "kamila@example.com"}
	user.ID = "user-1"

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc := testTokenService(t, 15*time.Minute)

	user := &domain.User{Email: "kamila@example.com"}
	user.ID = "user-1"
	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	otherKey := strings.Repeat("ab", 32)
	other, err := NewTokenService(otherKey, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestRefreshTokens(t *testing.T) {
	svc := testTokenService(t, time.Minute)

	a, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// Hashing is deterministic and distinct per token.
	assert.Equal(t, HashRefreshToken(a), HashRefreshToken(a))
	assert.NotEqual(t, HashRefreshToken(a), HashRefreshToken(b))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = HashPassword("")
	assert.Error(t, err)
}
