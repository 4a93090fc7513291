// AngelaMos | 2026
// auth.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// TokenClaims is the payload carried by a verified access token.
type TokenClaims struct {
	UserID string
	Email  string
}

// TokenVerifier checks an access token. A nil result covers every
// failure mode: expired, malformed, wrong signature.
type TokenVerifier interface {
	VerifyAccessToken(token string) *TokenClaims
}

// Authenticator requires a valid bearer token and attaches the
// identity to the request context. Fails closed.
func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(
					w,
					core.UnauthenticatedError("missing authorization token"),
				)
				return
			}

			claims := verifier.VerifyAccessToken(token)
			if claims == nil {
				core.JSONError(
					w,
					core.UnauthenticatedError("invalid or expired token"),
				)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an identity when a valid token is present but
// never rejects the request.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if claims := verifier.VerifyAccessToken(token); claims != nil {
					ctx := WithIdentity(r.Context(), Identity{
						UserID: claims.UserID,
						Email:  claims.Email,
					})
					r = r.WithContext(ctx)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractToken pulls the credential out of "Authorization: Bearer <t>".
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
