// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

type mockUserProvider struct {
	byEmail map[string]*UserInfo
	byID    map[string]*UserInfo

	createErr error
	lookupErr error
}

func newMockUserProvider() *mockUserProvider {
	return &mockUserProvider{
		byEmail: make(map[string]*UserInfo),
		byID:    make(map[string]*UserInfo),
	}
}

func (m *mockUserProvider) add(user *UserInfo) {
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
}

func (m *mockUserProvider) GetByEmail(
	ctx context.Context,
	email string,
) (*UserInfo, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	user, ok := m.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return user, nil
}

func (m *mockUserProvider) GetByID(
	ctx context.Context,
	id string,
) (*UserInfo, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	user, ok := m.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return user, nil
}

func (m *mockUserProvider) Create(
	ctx context.Context,
	name, email, passwordHash string,
) (*UserInfo, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if _, exists := m.byEmail[email]; exists {
		return nil, core.ErrConflict
	}
	user := &UserInfo{
		ID:           fmt.Sprintf("user-%d", len(m.byID)+1),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.add(user)
	return user, nil
}

func newTestService(t *testing.T) (*Service, *mockUserProvider) {
	t.Helper()

	manager, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	users := newMockUserProvider()
	return NewService(manager, users), users
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	req := RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.KindConflict, appErr.Kind)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
}

// Unknown email and wrong password must be indistinguishable to the
// caller.
func TestLoginGenericFailure(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "not the password!",
	})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.True(t, errors.Is(wrongPassword, core.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownEmail, core.ErrInvalidCredentials))
}

func TestRefreshRotatesPair(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(
		context.Background(),
		resp.Tokens.RefreshToken,
	)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "garbage")
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.KindUnauthenticated, appErr.Kind)
}

func TestRefreshRejectsDeletedUser(t *testing.T) {
	svc, users := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	delete(users.byID, resp.User.ID)
	delete(users.byEmail, resp.User.Email)

	_, err = svc.Refresh(context.Background(), resp.Tokens.RefreshToken)
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.KindUnauthenticated, appErr.Kind)
}
