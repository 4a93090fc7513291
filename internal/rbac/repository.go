// AngelaMos | 2026
// repository.go

package rbac

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

type Repository interface {
	RoleNames(ctx context.Context, userID string) ([]string, error)
	EffectivePermissions(ctx context.Context, userID string) ([]string, error)
	AssignRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) RoleNames(
	ctx context.Context,
	userID string,
) ([]string, error) {
	query := `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.name ASC`

	names := []string{}
	if err := r.db.SelectContext(ctx, &names, query, userID); err != nil {
		return nil, fmt.Errorf("resolve role names: %w", err)
	}

	return names, nil
}

// EffectivePermissions resolves the union of permission names across
// every role the user holds.
func (r *repository) EffectivePermissions(
	ctx context.Context,
	userID string,
) ([]string, error) {
	query := `
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = $1
		ORDER BY p.name ASC`

	names := []string{}
	if err := r.db.SelectContext(ctx, &names, query, userID); err != nil {
		return nil, fmt.Errorf("resolve permissions: %w", err)
	}

	return names, nil
}

func (r *repository) AssignRole(
	ctx context.Context,
	userID, roleID string,
) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, userID, roleID); err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("assign role: %w", core.ErrConflict)
		}
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("assign role: %w", core.ErrNotFound)
		}
		return fmt.Errorf("assign role: %w", err)
	}

	return nil
}

func (r *repository) RemoveRole(
	ctx context.Context,
	userID, roleID string,
) error {
	query := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, roleID)
	if err != nil {
		return fmt.Errorf("remove role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("remove role: %w", core.ErrNotFound)
	}

	return nil
}
