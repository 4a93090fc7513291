// AngelaMos | 2026
// dto.go

package role

type CreateRoleRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// ReplacePermissionsRequest swaps a role's entire permission set.
type ReplacePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" validate:"required,dive,uuid"`
}

type IDParams struct {
	RoleID string `param:"roleID" validate:"required,uuid"`
}

type ListQuery struct {
	Page    int `query:"page"     validate:"omitempty,min=1"`
	PerPage int `query:"per_page" validate:"omitempty,min=1,max=100"`
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}
}

func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}
