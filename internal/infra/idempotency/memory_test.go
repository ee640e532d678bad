//go:build unit

package idempotency_test

import (
	"context"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/infra/idempotency"
	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC))
	store := idempotency.NewMemoryStore(clk, time.Hour)
	var _ commands.IdempotencyStore = store

	key := uuid.New()

	rec, err := store.Reserve(ctx, key, "hash-a")
	require.NoError(t, err)
	assert.Nil(t, rec, "first reserve owns the key")

	rec, err = store.Reserve(ctx, key, "hash-a")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, commands.IdempotencyStatusProcessing, rec.Status)

	bookingID := uuid.New()
	require.NoError(t, store.MarkCompleted(ctx, key, "hash-a", bookingID))
	rec, err = store.Reserve(ctx, key, "hash-a")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, commands.IdempotencyStatusCompleted, rec.Status)
	assert.Equal(t, bookingID, *rec.BookingID)

	clk.Add(time.Hour)
	rec, err = store.Reserve(ctx, key, "hash-b")
	require.NoError(t, err)
	assert.Nil(t, rec, "expired key can be claimed again")

	require.NoError(t, store.Release(ctx, key))
	rec, err = store.Reserve(ctx, key, "hash-c")
	require.NoError(t, err)
	assert.Nil(t, rec, "released key can be claimed again")
}
