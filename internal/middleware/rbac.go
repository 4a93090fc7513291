// AngelaMos | 2026
// rbac.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// GrantResolver answers role and permission lookups for a user. Both
// queries hit the database fresh on every request; grants are never
// cached.
type GrantResolver interface {
	RoleNames(ctx context.Context, userID string) ([]string, error)
	EffectivePermissions(ctx context.Context, userID string) ([]string, error)
}

// RequireRole passes when the user holds at least one of the given
// role names (OR semantics).
func RequireRole(
	resolver GrantResolver,
	roles ...string,
) func(http.Handler) http.Handler {
	required := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		required[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				core.JSONError(
					w,
					core.UnauthenticatedError("authentication required"),
				)
				return
			}

			held, err := resolver.RoleNames(r.Context(), userID)
			if err != nil {
				slog.Error("role lookup failed",
					"error", err,
					"user_id", userID,
				)
				core.JSONError(w, core.InternalError(err))
				return
			}

			for _, name := range held {
				if _, ok := required[name]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			core.JSONError(w, core.ForbiddenError("insufficient role"))
		})
	}
}

// RequirePermission passes only when the union of permissions across
// all of the user's roles contains every requested name (AND
// semantics).
func RequirePermission(
	resolver GrantResolver,
	permissions ...string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			if userID == "" {
				core.JSONError(
					w,
					core.UnauthenticatedError("authentication required"),
				)
				return
			}

			granted, err := resolver.EffectivePermissions(
				r.Context(),
				userID,
			)
			if err != nil {
				slog.Error("permission lookup failed",
					"error", err,
					"user_id", userID,
				)
				core.JSONError(w, core.InternalError(err))
				return
			}

			set := make(map[string]struct{}, len(granted))
			for _, name := range granted {
				set[name] = struct{}{}
			}

			for _, name := range permissions {
				if _, ok := set[name]; !ok {
					core.JSONError(
						w,
						core.ForbiddenError("insufficient permissions"),
					)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
