// AngelaMos | 2026
// handler.go

package role

import (
	"net/http"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
	"github.com/carterperez-dev/templates/rbac-api/internal/router"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type RouteOptions struct {
	Authenticator     func(http.Handler) http.Handler
	RequirePermission func(perms ...string) func(http.Handler) http.Handler
}

func (h *Handler) Routes(opts RouteOptions) []router.Route {
	guard := func(perms ...string) []func(http.Handler) http.Handler {
		return []func(http.Handler) http.Handler{
			opts.Authenticator,
			opts.RequirePermission(perms...),
		}
	}

	return []router.Route{
		{
			Name:        "roles.list",
			Method:      http.MethodGet,
			Path:        "/",
			Description: "List roles with pagination",
			Tags:        []string{"roles"},
			Auth:        true,
			Middlewares: guard("roles.view"),
			Validate: &router.Schema{
				Query: func() any { return &ListQuery{} },
			},
			Responses: map[int]any{
				http.StatusOK: ListResult{},
			},
			Handler: h.List,
		},
		{
			Name:        "roles.create",
			Method:      http.MethodPost,
			Path:        "/",
			Description: "Create a role",
			Tags:        []string{"roles"},
			Auth:        true,
			Middlewares: guard("roles.edit"),
			Validate: &router.Schema{
				Body: func() any { return &CreateRoleRequest{} },
			},
			Responses: map[int]any{
				http.StatusCreated:  Role{},
				http.StatusConflict: core.ErrorEnvelope{},
			},
			Handler: h.Create,
		},
		{
			Name:        "roles.get",
			Method:      http.MethodGet,
			Path:        "/{roleID}",
			Description: "Fetch a role by id",
			Tags:        []string{"roles"},
			Auth:        true,
			Middlewares: guard("roles.view"),
			Validate: &router.Schema{
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusOK:       Role{},
				http.StatusNotFound: core.ErrorEnvelope{},
			},
			Handler: h.Get,
		},
		{
			Name:        "roles.update",
			Method:      http.MethodPut,
			Path:        "/{roleID}",
			Description: "Update a role",
			Tags:        []string{"roles"},
			Auth:        true,
			Middlewares: guard("roles.edit"),
			Validate: &router.Schema{
				Body:   func() any { return &UpdateRoleRequest{} },
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusOK:       Role{},
				http.StatusNotFound: core.ErrorEnvelope{},
			},
			Handler: h.Update,
		},
		{
			Name:        "roles.delete",
			Method:      http.MethodDelete,
			Path:        "/{roleID}",
			Description: "Delete a role and its junction rows",
			Tags:        []string{"roles"},
			Auth:        true,
			Middlewares: guard("roles.edit"),
			Validate: &router.Schema{
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusNoContent: nil,
				http.StatusNotFound:  core.ErrorEnvelope{},
			},
			Handler: h.Delete,
		},
		{
			Name:        "roles.permissions.replace",
			Method:      http.MethodPost,
			Path:        "/{roleID}/permissions",
			Description: "Replace the role's entire permission set",
			Tags:        []string{"roles", "permissions"},
			Auth:        true,
			Middlewares: guard("roles.edit"),
			Validate: &router.Schema{
				Body:   func() any { return &ReplacePermissionsRequest{} },
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusNoContent: nil,
				http.StatusNotFound:  core.ErrorEnvelope{},
			},
			Handler: h.ReplacePermissions,
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := router.ValidatedFrom(r.Context()).Query.(*ListQuery)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid query"))
		return
	}

	result, err := h.service.ListRoles(r.Context(), *query)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Paginated(w, "roles retrieved", result.Roles, result.Meta)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := router.ValidatedFrom(r.Context()).Body.(*CreateRoleRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}

	role, err := h.service.CreateRole(r.Context(), *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, "role created", role)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	role, err := h.service.GetRole(r.Context(), params.RoleID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "role retrieved", role)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	validated := router.ValidatedFrom(r.Context())
	req, ok := validated.Body.(*UpdateRoleRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}
	params, ok := validated.Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	role, err := h.service.UpdateRole(r.Context(), params.RoleID, *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "role updated", role)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	if err := h.service.DeleteRole(r.Context(), params.RoleID); err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ReplacePermissions(w http.ResponseWriter, r *http.Request) {
	validated := router.ValidatedFrom(r.Context())
	req, ok := validated.Body.(*ReplacePermissionsRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}
	params, ok := validated.Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	err := h.service.ReplacePermissions(
		r.Context(),
		params.RoleID,
		req.PermissionIDs,
	)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}
