// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/rbac-api/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestRepositoryGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "email_verified_at",
		"created_at", "updated_at",
	}).AddRow("u1", "Alice", "alice@example.com", "hash", nil, now, now)

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("u1").
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Nil(t, user.EmailVerifiedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryCreateConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{
		ID:    "u1",
		Name:  "Alice",
		Email: "alice@example.com",
	})
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestRepositoryDeleteMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM users").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryList(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "email_verified_at",
		"created_at", "updated_at",
	}).
		AddRow("u1", "Alice", "alice@example.com", "hash", nil, now, now).
		AddRow("u2", "Bob", "bob@example.com", "hash", nil, now, now)

	mock.ExpectQuery("SELECT id, name, email").
		WithArgs(10, 0).
		WillReturnRows(rows)

	users, total, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
