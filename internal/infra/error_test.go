//go:build unit

package infra

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, KindNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, KindForeignKeyViolated},
		{"other pg error", &pgconn.PgError{Code: "40001"}, KindDBFailure},
		{"plain error", fmt.Errorf("boom"), KindDBFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapPgErr(t *testing.T) {
	err := WrapPgErr(slog.Default(), "insert booked dates", &pgconn.PgError{Code: "23505"})

	assert.True(t, IsKind(err, KindDuplicateKey))
	assert.False(t, IsKind(err, KindNotFound))
	assert.Contains(t, err.Error(), "insert booked dates")
}
