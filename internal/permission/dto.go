// AngelaMos | 2026
// dto.go

package permission

type CreatePermissionRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type UpdatePermissionRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type IDParams struct {
	PermissionID string `param:"permissionID" validate:"required,uuid"`
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
