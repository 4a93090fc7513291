// AngelaMos | 2026
// handler.go

package auth

import (
	"net/http"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
	"github.com/carterperez-dev/templates/rbac-api/internal/middleware"
	"github.com/carterperez-dev/templates/rbac-api/internal/router"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RouteOptions carries the cross-cutting middleware the auth module
// mounts: the authenticator for /profile and the strict limiters for
// the credential endpoints.
type RouteOptions struct {
	Authenticator  func(http.Handler) http.Handler
	LoginLimiter   func(http.Handler) http.Handler
	RefreshLimiter func(http.Handler) http.Handler
}

func (h *Handler) Routes(opts RouteOptions) []router.Route {
	return []router.Route{
		{
			Name:        "auth.register",
			Method:      http.MethodPost,
			Path:        "/register",
			Description: "Register a new account and issue a token pair",
			Tags:        []string{"auth"},
			Limiter:     opts.LoginLimiter,
			Validate: &router.Schema{
				Body: func() any { return &RegisterRequest{} },
			},
			Responses: map[int]any{
				http.StatusCreated:  AuthResponse{},
				http.StatusConflict: core.ErrorEnvelope{},
			},
			Handler: h.Register,
		},
		{
			Name:        "auth.login",
			Method:      http.MethodPost,
			Path:        "/login",
			Description: "Authenticate with email and password",
			Tags:        []string{"auth"},
			Limiter:     opts.LoginLimiter,
			Validate: &router.Schema{
				Body: func() any { return &LoginRequest{} },
			},
			Responses: map[int]any{
				http.StatusOK:           AuthResponse{},
				http.StatusUnauthorized: core.ErrorEnvelope{},
			},
			Handler: h.Login,
		},
		{
			Name:        "auth.refresh",
			Method:      http.MethodPost,
			Path:        "/refresh",
			Description: "Exchange a refresh token for a fresh token pair",
			Tags:        []string{"auth"},
			Limiter:     opts.RefreshLimiter,
			Validate: &router.Schema{
				Body: func() any { return &RefreshRequest{} },
			},
			Responses: map[int]any{
				http.StatusOK:           AuthResponse{},
				http.StatusUnauthorized: core.ErrorEnvelope{},
			},
			Handler: h.Refresh,
		},
		{
			Name:        "auth.profile",
			Method:      http.MethodGet,
			Path:        "/profile",
			Description: "Return the authenticated user's profile",
			Tags:        []string{"auth"},
			Auth:        true,
			Middlewares: []func(http.Handler) http.Handler{
				opts.Authenticator,
			},
			Responses: map[int]any{
				http.StatusOK:           UserResponse{},
				http.StatusUnauthorized: core.ErrorEnvelope{},
			},
			Handler: h.Profile,
		},
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := router.ValidatedFrom(r.Context()).Body.(*RegisterRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.Created(w, "registration successful", resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := router.ValidatedFrom(r.Context()).Body.(*LoginRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), *req)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "login successful", resp)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, ok := router.ValidatedFrom(r.Context()).Body.(*RefreshRequest)
	if !ok {
		core.JSONError(w, core.BadRequestError("invalid request body"))
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "token refreshed", resp)
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.JSONError(w, core.UnauthenticatedError(""))
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		core.Error(w, err)
		return
	}

	core.OK(w, "profile retrieved", profile)
}
