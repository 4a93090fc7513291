// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/rbac-api/internal/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:       "access-secret-0123456789abcdef01",
		RefreshSecret:      "refresh-secret-0123456789abcdef0",
		AccessTokenExpire:  time.Hour,
		RefreshTokenExpire: 2 * time.Hour,
		Issuer:             "rbac-api",
		Audience:           "rbac-api-clients",
	}
}

func TestPairRoundTrip(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	pair, err := manager.Pair("user-1", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, 3600, pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims := manager.VerifyAccessToken(pair.AccessToken)
	require.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	refreshClaims := manager.VerifyRefreshToken(pair.RefreshToken)
	require.NotNil(t, refreshClaims)
	assert.Equal(t, "user-1", refreshClaims.UserID)
}

func TestVerifyRejectsWrongTokenClass(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	pair, err := manager.Pair("user-1", "alice@example.com")
	require.NoError(t, err)

	assert.Nil(t, manager.VerifyAccessToken(pair.RefreshToken))
	assert.Nil(t, manager.VerifyRefreshToken(pair.AccessToken))
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	token, err := manager.AccessToken("user-1", "alice@example.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	tampered := strings.Join(parts, ".")

	assert.Nil(t, manager.VerifyAccessToken(tampered))
	assert.Nil(t, manager.VerifyAccessToken("not-a-token"))
	assert.Nil(t, manager.VerifyAccessToken(""))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpire = -time.Minute

	manager, err := NewTokenManager(cfg)
	require.NoError(t, err)

	token, err := manager.AccessToken("user-1", "alice@example.com")
	require.NoError(t, err)

	assert.Nil(t, manager.VerifyAccessToken(token))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	other := testJWTConfig()
	other.AccessSecret = "another-access-secret-abcdef0123"
	other.RefreshSecret = "another-refresh-secret-abcdef012"
	foreign, err := NewTokenManager(other)
	require.NoError(t, err)

	token, err := foreign.AccessToken("user-1", "alice@example.com")
	require.NoError(t, err)

	assert.Nil(t, manager.VerifyAccessToken(token))
}
