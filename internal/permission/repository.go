// AngelaMos | 2026
// repository.go

package permission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, perm *Permission) error
	GetByID(ctx context.Context, id string) (*Permission, error)
	Update(ctx context.Context, perm *Permission) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]Permission, int, error)
	CountByIDs(ctx context.Context, ids []string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, perm *Permission) error {
	query := `
		INSERT INTO permissions (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, perm, query,
		perm.ID,
		perm.Name,
		perm.Description,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create permission: %w", core.ErrConflict)
		}
		return fmt.Errorf("create permission: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Permission, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM permissions
		WHERE id = $1`

	var perm Permission
	err := r.db.GetContext(ctx, &perm, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get permission: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get permission: %w", err)
	}

	return &perm, nil
}

func (r *repository) Update(ctx context.Context, perm *Permission) error {
	query := `
		UPDATE permissions
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, perm, query,
		perm.ID,
		perm.Name,
		perm.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update permission: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update permission: %w", core.ErrConflict)
		}
		return fmt.Errorf("update permission: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM permissions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete permission: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	limit, offset int,
) ([]Permission, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM permissions`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count permissions: %w", err)
	}

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM permissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	perms := []Permission{}
	if err := r.db.SelectContext(ctx, &perms, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list permissions: %w", err)
	}

	return perms, total, nil
}

func (r *repository) CountByIDs(
	ctx context.Context,
	ids []string,
) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM permissions WHERE id = ANY($1::uuid[])`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ids); err != nil {
		return 0, fmt.Errorf("count permissions: %w", err)
	}

	return count, nil
}
