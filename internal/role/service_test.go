// AngelaMos | 2026
// service_test.go

package role

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

// passthroughConverter lets slice arguments (uuid arrays) reach the
// mock driver unchanged.
type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) {
	return driver.Value(v), nil
}

type mockRoleRepo struct {
	roles map[string]*Role

	deleted  []string
	inserted map[string][]string

	listLimit  int
	listOffset int
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{
		roles:    make(map[string]*Role),
		inserted: make(map[string][]string),
	}
}

func (m *mockRoleRepo) Create(ctx context.Context, role *Role) error {
	for _, existing := range m.roles {
		if existing.Name == role.Name {
			return core.ErrConflict
		}
	}
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id string) (*Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return role, nil
}

func (m *mockRoleRepo) Update(ctx context.Context, role *Role) error {
	for id, existing := range m.roles {
		if id != role.ID && existing.Name == role.Name {
			return core.ErrConflict
		}
	}
	if _, ok := m.roles[role.ID]; !ok {
		return core.ErrNotFound
	}
	m.roles[role.ID] = role
	return nil
}

func (m *mockRoleRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

func (m *mockRoleRepo) List(
	ctx context.Context,
	limit, offset int,
) ([]Role, int, error) {
	m.listLimit = limit
	m.listOffset = offset

	out := make([]Role, 0, len(m.roles))
	for _, role := range m.roles {
		out = append(out, *role)
	}
	if offset > len(out) {
		return []Role{}, len(m.roles), nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], len(m.roles), nil
}

func (m *mockRoleRepo) DeletePermissions(
	ctx context.Context,
	roleID string,
) error {
	m.deleted = append(m.deleted, roleID)
	m.inserted[roleID] = nil
	return nil
}

func (m *mockRoleRepo) InsertPermissions(
	ctx context.Context,
	roleID string,
	permIDs []string,
) error {
	m.inserted[roleID] = append(m.inserted[roleID], permIDs...)
	return nil
}

type mockPermChecker struct {
	existing map[string]bool
	gotIDs   []string
}

func (m *mockPermChecker) CountByIDs(
	ctx context.Context,
	ids []string,
) (int, error) {
	m.gotIDs = ids
	count := 0
	for _, id := range ids {
		if m.existing[id] {
			count++
		}
	}
	return count, nil
}

func TestCreateRoleDuplicateName(t *testing.T) {
	repo := newMockRoleRepo()
	svc := NewService(nil, repo, &mockPermChecker{})

	_, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name: "editor",
	})
	require.NoError(t, err)

	_, err = svc.CreateRole(context.Background(), CreateRoleRequest{
		Name: "editor",
	})
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.KindConflict, appErr.Kind)
}

func TestUpdateRoleRenameCollision(t *testing.T) {
	repo := newMockRoleRepo()
	svc := NewService(nil, repo, &mockPermChecker{})

	editor, err := svc.CreateRole(context.Background(), CreateRoleRequest{
		Name: "editor",
	})
	require.NoError(t, err)
	_, err = svc.CreateRole(context.Background(), CreateRoleRequest{
		Name: "viewer",
	})
	require.NoError(t, err)

	name := "viewer"
	_, err = svc.UpdateRole(context.Background(), editor.ID, UpdateRoleRequest{
		Name: &name,
	})
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.KindConflict, appErr.Kind)
}

func TestListRolesPaginates(t *testing.T) {
	repo := newMockRoleRepo()
	svc := NewService(nil, repo, &mockPermChecker{})

	for i := 0; i < 12; i++ {
		_, err := svc.CreateRole(context.Background(), CreateRoleRequest{
			Name: "role-" + string(rune('a'+i)),
		})
		require.NoError(t, err)
	}

	result, err := svc.ListRoles(context.Background(), ListQuery{
		Page:    3,
		PerPage: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, repo.listLimit)
	assert.Equal(t, 10, repo.listOffset)
	assert.Len(t, result.Roles, 2)
	assert.Equal(t, 12, result.Meta.Total)
	assert.Equal(t, 3, result.Meta.Page)
	assert.Equal(t, 3, result.Meta.TotalPages)
	assert.False(t, result.Meta.HasNextPage)
	assert.True(t, result.Meta.HasPrevPage)
}

func TestListRolesDefaultsPage(t *testing.T) {
	repo := newMockRoleRepo()
	svc := NewService(nil, repo, &mockPermChecker{})

	result, err := svc.ListRoles(context.Background(), ListQuery{})
	require.NoError(t, err)

	assert.Equal(t, 10, repo.listLimit)
	assert.Equal(t, 0, repo.listOffset)
	assert.Equal(t, 1, result.Meta.Page)
}

func replaceTestService(t *testing.T) (*Service, *mockRoleRepo, *mockPermChecker, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(
		sqlmock.ValueConverterOption(passthroughConverter{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := newMockRoleRepo()
	perms := &mockPermChecker{existing: map[string]bool{}}

	return NewService(db, repo, perms), repo, perms, mock
}

func TestReplacePermissionsUnknownID(t *testing.T) {
	svc, repo, perms, mock := replaceTestService(t)

	repo.roles["r1"] = &Role{ID: "r1", Name: "editor"}
	perms.existing["p1"] = true

	err := svc.ReplacePermissions(
		context.Background(),
		"r1",
		[]string{"p1", "p2"},
	)
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.KindBadRequest, appErr.Kind)

	// No transaction may begin when validation fails.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacePermissionsUnknownRole(t *testing.T) {
	svc, _, perms, _ := replaceTestService(t)
	perms.existing["p1"] = true

	err := svc.ReplacePermissions(context.Background(), "ghost", []string{"p1"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestReplacePermissionsDedupes(t *testing.T) {
	svc, repo, perms, mock := replaceTestService(t)

	repo.roles["r1"] = &Role{ID: "r1", Name: "editor"}
	perms.existing["p1"] = true
	perms.existing["p2"] = true

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM role_permissions").
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO role_permissions").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := svc.ReplacePermissions(
		context.Background(),
		"r1",
		[]string{"p1", "p2", "p1"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, perms.gotIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Assigning [p1] then [p2] must leave only p2: the set is replaced,
// never merged.
func TestReplacePermissionsReplacesNotMerges(t *testing.T) {
	svc, repo, perms, mock := replaceTestService(t)

	repo.roles["r1"] = &Role{ID: "r1", Name: "editor"}
	perms.existing["p1"] = true
	perms.existing["p2"] = true

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM role_permissions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO role_permissions").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	require.NoError(t, svc.ReplacePermissions(
		context.Background(), "r1", []string{"p1"},
	))
	require.NoError(t, svc.ReplacePermissions(
		context.Background(), "r1", []string{"p2"},
	))

	assert.NoError(t, mock.ExpectationsWereMet())
}
