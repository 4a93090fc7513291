// AngelaMos | 2026
// service.go

package permission

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// ListResult is one page of permissions plus its pagination metadata.
type ListResult struct {
	Permissions []Permission    `json:"permissions"`
	Meta        core.Pagination `json:"meta"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePermission(
	ctx context.Context,
	req CreatePermissionRequest,
) (*Permission, error) {
	perm := &Permission{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, perm); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("permission name already in use")
		}
		return nil, err
	}

	return perm, nil
}

func (s *Service) GetPermission(
	ctx context.Context,
	id string,
) (*Permission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePermission(
	ctx context.Context,
	id string,
	req UpdatePermissionRequest,
) (*Permission, error) {
	perm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		perm.Name = *req.Name
	}
	if req.Description != nil {
		perm.Description = req.Description
	}

	if err := s.repo.Update(ctx, perm); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("permission name already in use")
		}
		return nil, err
	}

	return perm, nil
}

func (s *Service) DeletePermission(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPermissions(
	ctx context.Context,
	query ListQuery,
) (*ListResult, error) {
	query.Normalize()

	perms, total, err := s.repo.List(ctx, query.PerPage, query.Offset())
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Permissions: perms,
		Meta:        core.NewPagination(query.Page, query.PerPage, total),
	}, nil
}
