//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/commands"
	"github.com/deanb221/caravan/tests/common/builder"
	"github.com/deanb221/caravan/tests/common/fake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogImport(t *testing.T) {
	ctx := context.Background()
	blocked := civil.NewDate(2025, time.May, 2)

	t.Run("upserts caravans and blocks external dates", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := commands.NewCatalogUseCase(uow, nil)
		entries := []commands.CatalogEntry{
			builder.NewCaravanBuilder().WithBookedDates(blocked, blocked.AddDays(1)).BuildCatalogEntry(),
			builder.NewCaravanBuilder().WithSlug("the-kestrel").BuildCatalogEntry(),
		}

		result, err := uc.Import(ctx, entries)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Caravans)
		assert.Equal(t, int64(2), result.BlockedDates)
		assert.Len(t, uow.Snapshot().Caravans, 2)
	})

	t.Run("re-import keeps identity and does not double count days", func(t *testing.T) {
		uow := fake.NewUoW()
		uc := commands.NewCatalogUseCase(uow, nil)
		entry := builder.NewCaravanBuilder().WithBookedDates(blocked).BuildCatalogEntry()

		_, err := uc.Import(ctx, []commands.CatalogEntry{entry})
		require.NoError(t, err)
		first := uow.Snapshot().Caravans["the-swift"].ID()

		entry.WeeklyTotalPence = 55000
		result, err := uc.Import(ctx, []commands.CatalogEntry{entry})

		require.NoError(t, err)
		assert.Equal(t, int64(0), result.BlockedDates)
		stored := uow.Snapshot().Caravans["the-swift"]
		assert.Equal(t, first, stored.ID())
		assert.Equal(t, int64(55000), stored.Pricing().WeeklyTotal().Pence())
	})

	t.Run("invalid entries abort the whole import", func(t *testing.T) {
		testCases := []struct {
			name    string
			entries []commands.CatalogEntry
		}{
			{
				name:    "bad slug",
				entries: []commands.CatalogEntry{builder.NewCaravanBuilder().WithSlug("Bad Slug!").BuildCatalogEntry()},
			},
			{
				name:    "negative price",
				entries: []commands.CatalogEntry{builder.NewCaravanBuilder().WithPricing(-1, 50000).BuildCatalogEntry()},
			},
			{
				name: "duplicate slug",
				entries: []commands.CatalogEntry{
					builder.NewCaravanBuilder().BuildCatalogEntry(),
					builder.NewCaravanBuilder().BuildCatalogEntry(),
				},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				uow := fake.NewUoW()
				uc := commands.NewCatalogUseCase(uow, nil)

				_, err := uc.Import(ctx, tc.entries)

				assert.True(t, errs.Is(err, errs.ErrDomainValidation), "got %v", err)
				assert.Empty(t, uow.Snapshot().Caravans)
			})
		}
	})
}
