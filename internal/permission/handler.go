// AngelaMos | 2026
// handler.go

package permission

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
			Name:        "permissions.list",
			Method:      http.MethodGet,
			Path:        "/",
			Description: "List permissions with pagination",
			Tags:        []string{"permissions"},
			Auth:        true,
			Middlewares: guard("permissions.view"),
			Validate: &router.Schema{
				Query: func() any { return &ListQuery{} },
			},
			Responses: map[int]any{
				http.StatusOK: ListResult{},
			},
			Handler: h.List,
		},
		{
			Name:        "permissions.create",
			Method:      http.MethodPost,
			Path:        "/",
			Description: "Create a permission",
			Tags:        []string{"permissions"},
			Auth:        true,
			Middlewares: guard("permissions.edit"),
			Validate: &router.Schema{
				Body: func() any { return &CreatePermissionRequest{} },
			},
			Responses: map[int]any{
				http.StatusCreated:  Permission{},
				http.StatusConflict: core.ErrorEnvelope{},
			},
			Handler: h.Create,
		},
		{
			Name:        "permissions.get",
			Method:      http.MethodGet,
			Path:        "/{permissionID}",
			Description: "Fetch a permission by id",
			Tags:        []string{"permissions"},
			Auth:        true,
			Middlewares: guard("permissions.view"),
			Validate: &router.Schema{
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusOK:       Permission{},
				http.StatusNotFound: core.ErrorEnvelope{},
			},
			Handler: h.Get,
		},
		{
			Name:        "permissions.update",
			Method:      http.MethodPut,
			Path:        "/{permissionID}",
			Description: "Update a permission",
			Tags:        []string{"permissions"},
			Auth:        true,
			Middlewares: guard("permissions.edit"),
			Validate: &router.Schema{
				Body:   func() any { return &UpdatePermissionRequest{} },
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusOK:       Permission{},
				http.StatusNotFound: core.ErrorEnvelope{},
			},
			Handler: h.Update,
		},
		{
			Name:        "permissions.delete",
			Method:      http.MethodDelete,
			Path:        "/{permissionID}",
			Description: "Delete a permission and its role links",
			Tags:        []string{"permissions"},
			Auth:        true,
			Middlewares: guard("permissions.edit"),
			Validate: &router.Schema{
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusNoContent: nil,
				http.StatusNotFound:  core.ErrorEnvelope{},
			},
			Handler: h.Delete,
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := router.ValidatedFrom(r.Context()).Query.(*ListQuery)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid query"))
		return
	}

	result, err := h.service.ListPermissions(r.Context(), *query)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Paginated(
		w,
		"permissions retrieved",
		result.Permissions,
		result.Meta,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := router.ValidatedFrom(r.Context()).Body.(*CreatePermissionRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}

	perm, err := h.service.CreatePermission(r.Context(), *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, "permission created", perm)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	perm, err := h.service.GetPermission(r.Context(), params.PermissionID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "permission retrieved", perm)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	validated := router.ValidatedFrom(r.Context())
	req, ok := validated.Body.(*UpdatePermissionRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}
	params, ok := validated.Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	perm, err := h.service.UpdatePermission(
		r.Context(),
		params.PermissionID,
		*req,
	)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "permission updated", perm)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	err := h.service.DeletePermission(r.Context(), params.PermissionID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}
