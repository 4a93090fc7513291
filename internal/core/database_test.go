// AngelaMos | 2026
// database_test.go

package core

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestJitteredDurationRange(t *testing.T) {
	base := 7 * time.Minute
	for i := 0; i < 100; i++ {
		got := jitteredDuration(base)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/7)
	}
}

func TestJitteredDurationTinyBase(t *testing.T) {
	for _, base := range []time.Duration{0, 1, 6, -time.Second} {
		assert.Equal(t, base, jitteredDuration(base))
	}
}

func TestPostgresViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsUniqueViolation(nil))
}
