// AngelaMos | 2026
// repository_test.go

package role

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
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "created_at", "updated_at",
	}).
		AddRow("r2", "viewer", nil, now, now).
		AddRow("r1", "editor", nil, now.Add(-time.Hour), now)

	mock.ExpectQuery("SELECT id, name, description").
		WithArgs(5, 10).
		WillReturnRows(rows)

	roles, total, err := repo.List(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 17, total)
	assert.Len(t, roles, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryListOrdersByNewest(t *testing.T) {
	repo, mock := newSQLRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "created_at", "updated_at",
	}).
		AddRow("r2", "viewer", nil, now, now).
		AddRow("r1", "editor", nil, now.Add(-time.Hour), now)

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	roles, _, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "r2", roles[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
