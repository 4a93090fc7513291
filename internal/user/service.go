// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/rbac-api/internal/auth"
	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

const listCachePrefix = "users:list"

// ListResult is the cached shape of one list page.
type ListResult struct {
	Users []UserResponse  `json:"users"`
	Meta  core.Pagination `json:"meta"`
}

type Service struct {
	repo    Repository
	cache   *core.Cache
	listTTL time.Duration
}

func NewService(
	repo Repository,
	cache *core.Cache,
	listTTL time.Duration,
) *Service {
	return &Service{repo: repo, cache: cache, listTTL: listTTL}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	return toUserInfo(user), nil
}

func (s *Service) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: passwordHash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("email already registered")
		}
		return nil, err
	}

	s.invalidateListCache(ctx)

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ConflictError("email already registered")
		}
		return nil, err
	}

	s.invalidateListCache(ctx)

	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)

	return nil
}

// ListUsers serves pages from the cache when possible. The cache is a
// read-through decoration: any cache failure falls back to the
// database and the request proceeds.
func (s *Service) ListUsers(
	ctx context.Context,
	query ListQuery,
) (*ListResult, error) {
	query.Normalize()

	key := fmt.Sprintf(
		"%s:page:%d:per_page:%d",
		listCachePrefix,
		query.Page,
		query.PerPage,
	)

	var cached ListResult
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, core.ErrCacheMiss) {
		slog.Warn("user list cache read failed", "error", err)
	}

	users, total, err := s.repo.List(ctx, query.PerPage, query.Offset())
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Users: ToUserResponseList(users),
		Meta:  core.NewPagination(query.Page, query.PerPage, total),
	}

	if err := s.cache.Set(ctx, key, result, s.listTTL); err != nil {
		slog.Warn("user list cache write failed", "error", err)
	}

	return result, nil
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, listCachePrefix+":*"); err != nil {
		slog.Warn("user list cache invalidation failed", "error", err)
	}
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
