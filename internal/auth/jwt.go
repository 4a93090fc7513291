// AngelaMos | 2026
// jwt.go

package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/templates/rbac-api/internal/config"
	"github.com/carterperez-dev/templates/rbac-api/internal/middleware"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair is the ephemeral credential bundle issued on register,
// login, and refresh. Nothing is persisted; validity is signature plus
// expiry.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// TokenManager signs and verifies the two token classes with
// independent secrets, so neither class can be forged from the other's
// key and the TTL policy of each can evolve separately.
type TokenManager struct {
	accessKey  jwk.Key
	refreshKey jwk.Key
	config     config.JWTConfig
}

func NewTokenManager(cfg config.JWTConfig) (*TokenManager, error) {
	accessKey, err := symmetricKey(cfg.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("access key: %w", err)
	}

	refreshKey, err := symmetricKey(cfg.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("refresh key: %w", err)
	}

	return &TokenManager{
		accessKey:  accessKey,
		refreshKey: refreshKey,
		config:     cfg,
	}, nil
}

func symmetricKey(secret string) (jwk.Key, error) {
	key, err := jwk.Import([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("import secret: %w", err)
	}

	if err := key.Set(jwk.AlgorithmKey, jwa.HS256()); err != nil {
		return nil, fmt.Errorf("set algorithm: %w", err)
	}

	return key, nil
}

func (m *TokenManager) AccessToken(userID, email string) (string, error) {
	return m.sign(
		userID,
		email,
		tokenTypeAccess,
		m.config.AccessTokenExpire,
		m.accessKey,
	)
}

func (m *TokenManager) RefreshToken(userID, email string) (string, error) {
	return m.sign(
		userID,
		email,
		tokenTypeRefresh,
		m.config.RefreshTokenExpire,
		m.refreshKey,
	)
}

func (m *TokenManager) Pair(userID, email string) (*TokenPair, error) {
	accessToken, err := m.AccessToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshToken, err := m.RefreshToken(userID, email)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(m.config.AccessTokenExpire / time.Second),
	}, nil
}

func (m *TokenManager) sign(
	userID, email, tokenType string,
	ttl time.Duration,
	key jwk.Key,
) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(userID).
		IssuedAt(now).
		NotBefore(now).
		Expiration(now.Add(ttl)).
		Claim("email", email).
		Claim("type", tokenType).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// VerifyAccessToken returns the decoded claims, or nil on any failure:
// expired, malformed, wrong signature, wrong token class. A nil result
// is a lookup miss, never an error to propagate.
func (m *TokenManager) VerifyAccessToken(
	raw string,
) *middleware.TokenClaims {
	return m.verify(raw, m.accessKey, tokenTypeAccess)
}

// VerifyRefreshToken is the refresh-class counterpart of
// VerifyAccessToken; same nil-on-failure contract.
func (m *TokenManager) VerifyRefreshToken(
	raw string,
) *middleware.TokenClaims {
	return m.verify(raw, m.refreshKey, tokenTypeRefresh)
}

func (m *TokenManager) verify(
	raw string,
	key jwk.Key,
	wantType string,
) *middleware.TokenClaims {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
	)
	if err != nil {
		return nil
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != wantType {
		return nil
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil
	}

	var email string
	if err := token.Get("email", &email); err != nil {
		return nil
	}

	return &middleware.TokenClaims{
		UserID: subject,
		Email:  email,
	}
}
