// AngelaMos | 2026
// repository.go

package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id string) (*Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]Role, int, error)
	DeletePermissions(ctx context.Context, roleID string) error
	InsertPermissions(ctx context.Context, roleID string, permIDs []string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, role *Role) error {
	query := `
		INSERT INTO roles (id, name, description)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, role, query,
		role.ID,
		role.Name,
		role.Description,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create role: %w", core.ErrConflict)
		}
		return fmt.Errorf("create role: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Role, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE id = $1`

	var role Role
	err := r.db.GetContext(ctx, &role, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}

	return &role, nil
}

func (r *repository) Update(ctx context.Context, role *Role) error {
	query := `
		UPDATE roles
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, role, query,
		role.ID,
		role.Name,
		role.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update role: %w", core.ErrConflict)
		}
		return fmt.Errorf("update role: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM roles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete role: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	limit, offset int,
) ([]Role, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM roles`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	roles := []Role{}
	if err := r.db.SelectContext(ctx, &roles, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}

	return roles, total, nil
}

func (r *repository) DeletePermissions(
	ctx context.Context,
	roleID string,
) error {
	query := `DELETE FROM role_permissions WHERE role_id = $1`

	if _, err := r.db.ExecContext(ctx, query, roleID); err != nil {
		return fmt.Errorf("delete role permissions: %w", err)
	}

	return nil
}

func (r *repository) InsertPermissions(
	ctx context.Context,
	roleID string,
	permIDs []string,
) error {
	if len(permIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO role_permissions (role_id, permission_id)
		SELECT $1, unnest($2::uuid[])`

	if _, err := r.db.ExecContext(ctx, query, roleID, permIDs); err != nil {
		return fmt.Errorf("insert role permissions: %w", err)
	}

	return nil
}
