//go:build unit

package uow

import (
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&pgconn.PgError{Code: pgErrCodeSerializationFailure}))
	assert.True(t, isRetryableError(fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgErrCodeDeadlockDetected})))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(fmt.Errorf("plain")))
	assert.False(t, isRetryableError(nil))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base

		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}

func TestCryptoRandInt63n(t *testing.T) {
	assert.Equal(t, int64(0), cryptoRandInt63n(0))
	for i := 0; i < 50; i++ {
		n := cryptoRandInt63n(10)
		assert.GreaterOrEqual(t, n, int64(0))
		assert.Less(t, n, int64(10))
	}
}
