// AngelaMos | 2026
// repository_test.go

package permission

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestRepositoryListPaginates(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "created_at", "updated_at",
	}).
		AddRow("p2", "users.edit", nil, now, now).
		AddRow("p1", "users.view", nil, now.Add(-time.Minute), now)

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs(10, 20).
		WillReturnRows(rows)

	perms, total, err := repo.List(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Equal(t, 23, total)
	require.Len(t, perms, 2)
	assert.Equal(t, "p2", perms[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The service normalizes the page query and attaches pagination
// metadata computed from the repository total.
func TestListPermissionsMeta(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	svc := NewService(NewRepository(sqlx.NewDb(mockDB, "sqlmock")))

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "created_at", "updated_at",
		}).AddRow("p1", "roles.view", nil, now, now))

	result, err := svc.ListPermissions(context.Background(), ListQuery{
		Page:    2,
		PerPage: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 11, result.Meta.Total)
	assert.Equal(t, 2, result.Meta.Page)
	assert.Equal(t, 3, result.Meta.TotalPages)
	assert.True(t, result.Meta.HasNextPage)
	assert.True(t, result.Meta.HasPrevPage)
	assert.NoError(t, mock.ExpectationsWereMet())
}
