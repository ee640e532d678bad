//go:build unit

package booking_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedPackageCalculator(t *testing.T) {
	pricing, err := caravan.NewPricing(caravan.NewMoney(12000), caravan.NewMoney(50000))
	require.NoError(t, err)

	t.Run("weekend is a flat total, not a nightly rate", func(t *testing.T) {
		calc := booking.NewFixedPackageCalculator(booking.DefaultPolicy(), true, nil)

		q, err := calc.Calculate(pricing, fri07, mon10)
		require.NoError(t, err)
		assert.Equal(t, booking.Quote{Type: booking.TypeWeekend, Total: caravan.NewMoney(12000), Nights: 3}, q)
	})

	t.Run("weekly is a flat total", func(t *testing.T) {
		calc := booking.NewFixedPackageCalculator(booking.DefaultPolicy(), true, nil)

		q, err := calc.Calculate(pricing, fri07, fri14)
		require.NoError(t, err)
		assert.Equal(t, booking.Quote{Type: booking.TypeWeekly, Total: caravan.NewMoney(50000), Nights: 7}, q)
	})

	t.Run("strict mode panics on unreachable nights", func(t *testing.T) {
		calc := booking.NewFixedPackageCalculator(booking.DefaultPolicy(), true, nil)

		assert.Panics(t, func() {
			_, _ = calc.Calculate(pricing, fri07, civil.NewDate(2025, time.March, 12))
		})
	})

	t.Run("lenient mode degrades to none and logs", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		calc := booking.NewFixedPackageCalculator(booking.DefaultPolicy(), false, logger)

		q, err := calc.Calculate(pricing, fri07, civil.NewDate(2025, time.March, 12))
		assert.ErrorIs(t, err, booking.ErrUnreachableNights)
		assert.Equal(t, booking.TypeNone, q.Type)
		assert.True(t, q.Total.IsZero())
		assert.Equal(t, 5, q.Nights)
		assert.Contains(t, buf.String(), "programmer error")
		assert.Contains(t, buf.String(), "nights=5")
	})
}
