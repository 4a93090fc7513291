// AngelaMos | 2026
// handler.go

package user

import (
	"context"
	"net/http"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
	"github.com/carterperez-dev/templates/rbac-api/internal/router"
)

// RoleAssigner grants and revokes role memberships; implemented by the
// rbac service.
type RoleAssigner interface {
	AssignRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
}

type Handler struct {
	service *Service
	roles   RoleAssigner
}

func NewHandler(service *Service, roles RoleAssigner) *Handler {
	return &Handler{service: service, roles: roles}
}

// RouteOptions carries the guard middleware: the authenticator plus a
// permission-check factory.
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
			Name:        "users.list",
			Method:      http.MethodGet,
			Path:        "/",
			Description: "List users with pagination",
			Tags:        []string{"users"},
			Auth:        true,
			Middlewares: guard("users.view"),
			Validate: &router.Schema{
				Query: func() any { return &ListQuery{} },
			},
			Responses: map[int]any{
				http.StatusOK: ListResult{},
			},
			Handler: h.List,
		},
		{
			Name:        "users.create",
			Method:      http.MethodPost,
			Path:        "/",
			Description: "Create a user",
			Tags:        []string{"users"},
			Auth:        true,
			Middlewares: guard("users.edit"),
			Validate: &router.Schema{
				Body: func() any { return &CreateUserRequest{} },
			},
			Responses: map[int]any{
				http.StatusCreated:  UserResponse{},
				http.StatusConflict: core.ErrorEnvelope{},
			},
			Handler: h.Create,
		},
		{
			Name:        "users.get",
			Method:      http.MethodGet,
			Path:        "/{userID}",
			Description: "Fetch a user by id",
			Tags:        []string{"users"},
			Auth:        true,
			Middlewares: guard("users.view"),
			Validate: &router.Schema{
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusOK:       UserResponse{},
				http.StatusNotFound: core.ErrorEnvelope{},
			},
			Handler: h.Get,
		},
		{
			Name:        "users.update",
			Method:      http.MethodPut,
			Path:        "/{userID}",
			Description: "Update a user's profile",
			Tags:        []string{"users"},
			Auth:        true,
			Middlewares: guard("users.edit"),
			Validate: &router.Schema{
				Body:   func() any { return &UpdateUserRequest{} },
				Params: func() any { return &IDParams{} },
			},
			Responses: map[int]any{
				http.StatusOK:       UserResponse{},
				http.StatusNotFound: core.ErrorEnvelope{},
			},
			Handler: h.Update,
		},
		{
			Name:        "users.delete",
			Method:      http.MethodDelete,
			Path:        "/{userID}",
			Description: "Delete a user and its role assignments",
			Tags:        []string{"users"},
			Auth:        true,
			Middlewares: guard("users.edit"),
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
			Name:        "users.roles.assign",
			Method:      http.MethodPost,
			Path:        "/{userID}/roles/{roleID}",
			Description: "Assign a role to a user",
			Tags:        []string{"users", "roles"},
			Auth:        true,
			Middlewares: guard("users.edit"),
			Validate: &router.Schema{
				Params: func() any { return &RoleParams{} },
			},
			Responses: map[int]any{
				http.StatusNoContent: nil,
				http.StatusNotFound:  core.ErrorEnvelope{},
			},
			Handler: h.AssignRole,
		},
		{
			Name:        "users.roles.remove",
			Method:      http.MethodDelete,
			Path:        "/{userID}/roles/{roleID}",
			Description: "Remove a role from a user",
			Tags:        []string{"users", "roles"},
			Auth:        true,
			Middlewares: guard("users.edit"),
			Validate: &router.Schema{
				Params: func() any { return &RoleParams{} },
			},
			Responses: map[int]any{
				http.StatusNoContent: nil,
				http.StatusNotFound:  core.ErrorEnvelope{},
			},
			Handler: h.RemoveRole,
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query, ok := router.ValidatedFrom(r.Context()).Query.(*ListQuery)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid query"))
		return
	}

	result, err := h.service.ListUsers(r.Context(), *query)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Paginated(w, "users retrieved", result.Users, result.Meta)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := router.ValidatedFrom(r.Context()).Body.(*CreateUserRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}

	user, err := h.service.CreateUser(r.Context(), *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, "user created", ToUserResponse(user))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	user, err := h.service.GetUser(r.Context(), params.UserID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "user retrieved", ToUserResponse(user))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	validated := router.ValidatedFrom(r.Context())
	req, ok := validated.Body.(*UpdateUserRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}
	params, ok := validated.Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	user, err := h.service.UpdateUser(r.Context(), params.UserID, *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "user updated", ToUserResponse(user))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*IDParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	if err := h.service.DeleteUser(r.Context(), params.UserID); err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*RoleParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	err := h.roles.AssignRole(r.Context(), params.UserID, params.RoleID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	params, ok := router.ValidatedFrom(r.Context()).Params.(*RoleParams)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid parameters"))
		return
	}

	err := h.roles.RemoveRole(r.Context(), params.UserID, params.RoleID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.NoContent(w)
}
