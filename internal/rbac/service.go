// AngelaMos | 2026
// service.go

package rbac

import (
	"context"
	"errors"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
	"github.com/carterperez-dev/templates/rbac-api/internal/middleware"
	"github.com/carterperez-dev/templates/rbac-api/internal/user"
)

// Service resolves grants for the authorization middleware and manages
// user-role assignments. Grants are resolved fresh per request; there is
// deliberately no caching layer, so a revoked role takes effect on the
// next request.
type Service struct {
	repo Repository
}

var (
	_ middleware.GrantResolver = (*Service)(nil)
	_ user.RoleAssigner        = (*Service)(nil)
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) RoleNames(
	ctx context.Context,
	userID string,
) ([]string, error) {
	return s.repo.RoleNames(ctx, userID)
}

func (s *Service) EffectivePermissions(
	ctx context.Context,
	userID string,
) ([]string, error) {
	return s.repo.EffectivePermissions(ctx, userID)
}

func (s *Service) AssignRole(ctx context.Context, userID, roleID string) error {
	if err := s.repo.AssignRole(ctx, userID, roleID); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return core.ConflictError("role already assigned")
		}
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("user or role")
		}
		return err
	}
	return nil
}

func (s *Service) RemoveRole(ctx context.Context, userID, roleID string) error {
	if err := s.repo.RemoveRole(ctx, userID, roleID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError("role assignment")
		}
		return err
	}
	return nil
}
