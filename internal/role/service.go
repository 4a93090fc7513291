// AngelaMos | 2026
// service.go

package role

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// PermissionChecker reports how many of the given permission ids exist;
// implemented by the permission repository.
type PermissionChecker interface {
	CountByIDs(ctx context.Context, ids []string) (int, error)
}

// ListResult is one page of roles plus its pagination metadata.
type ListResult struct {
	Roles []Role          `json:"roles"`
	Meta  core.Pagination `json:"meta"`
}

type Service struct {
	db    *sqlx.DB
	repo  Repository
	perms PermissionChecker
}

func NewService(db *sqlx.DB, repo Repository, perms PermissionChecker) *Service {
	return &Service{db: db, repo: repo, perms: perms}
}

func (s *Service) CreateRole(
	ctx context.Context,
	req CreateRoleRequest,
) (*Role, error) {
	role := &Role{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, role); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("role name already in use")
		}
		return nil, err
	}

	return role, nil
}

func (s *Service) GetRole(ctx context.Context, id string) (*Role, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateRole(
	ctx context.Context,
	id string,
	req UpdateRoleRequest,
) (*Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = req.Description
	}

	if err := s.repo.Update(ctx, role); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("role name already in use")
		}
		return nil, err
	}

	return role, nil
}

func (s *Service) DeleteRole(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListRoles(
	ctx context.Context,
	query ListQuery,
) (*ListResult, error) {
	query.Normalize()

	roles, total, err := s.repo.List(ctx, query.PerPage, query.Offset())
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Roles: roles,
		Meta:  core.NewPagination(query.Page, query.PerPage, total),
	}, nil
}

// ReplacePermissions swaps the role's permission set wholesale. Every
// supplied id must reference an existing permission; the delete and
// re-insert run in a single transaction so concurrent readers never see
// a partially replaced set.
func (s *Service) ReplacePermissions(
	ctx context.Context,
	roleID string,
	permIDs []string,
) error {
	if _, err := s.repo.GetByID(ctx, roleID); err != nil {
		return err
	}

	ids := dedupe(permIDs)

	count, err := s.perms.CountByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("verify permission ids: %w", err)
	}
	if count != len(ids) {
		return core.BadRequestError("one or more permission ids do not exist")
	}

	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)
		if err := txRepo.DeletePermissions(ctx, roleID); err != nil {
			return err
		}
		return txRepo.InsertPermissions(ctx, roleID, ids)
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
