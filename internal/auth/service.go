// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// UserInfo is the slice of the user record the auth flows need.
type UserInfo struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	EmailVerifiedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UserProvider decouples auth from the user package's storage.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash string,
	) (*UserInfo, error)
}

type Service struct {
	tokens *TokenManager
	users  UserProvider
}

func NewService(tokens *TokenManager, users UserProvider) *Service {
	return &Service{tokens: tokens, users: users}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.authResponse(user)
}

// Login deliberately reports the same error for an unknown email and a
// wrong password, and burns a hash comparison in both cases, so the
// endpoint cannot be used to enumerate accounts.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing equalization only
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken string,
) (*AuthResponse, error) {
	claims := s.tokens.VerifyRefreshToken(refreshToken)
	if claims == nil {
		return nil, core.UnauthenticatedError(
			"invalid or expired refresh token",
		)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.UnauthenticatedError(
				"invalid or expired refresh token",
			)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.authResponse(user)
}

func (s *Service) Profile(
	ctx context.Context,
	userID string,
) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *Service) authResponse(user *UserInfo) (*AuthResponse, error) {
	pair, err := s.tokens.Pair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:   toUserResponse(user),
		Tokens: *pair,
	}, nil
}

func toUserResponse(u *UserInfo) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
