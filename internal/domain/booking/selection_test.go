//go:build unit

package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionScenario(t *testing.T) {
	e := newTestEngine(t, beforeSeason())
	item := newTestCaravan(t)
	require.Equal(t, civil.NewDate(2025, time.March, 1), e.MinBookableDate())

	sel := e.NewSelection(item)
	require.NoError(t, sel.ChooseCheckIn(fri07))

	q, err := sel.ChooseCheckOut(mon10)
	require.NoError(t, err)
	assert.Equal(t, booking.TypeWeekend, q.Type)
	assert.Equal(t, caravan.NewMoney(12000), q.Total)

	q, err = sel.ChooseCheckOut(fri14)
	require.NoError(t, err)
	assert.Equal(t, booking.TypeWeekly, q.Type)
	assert.Equal(t, caravan.NewMoney(50000), q.Total)

	res, err := sel.Result()
	require.NoError(t, err)
	assert.Equal(t, booking.Result{CheckIn: fri07, CheckOut: fri14, Type: booking.TypeWeekly, Total: caravan.NewMoney(50000), Nights: 7}, res)
}

func TestSelectionTransitions(t *testing.T) {
	e := newTestEngine(t, beforeSeason())

	t.Run("starts empty", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))
		assert.Equal(t, booking.NoSelection, sel.State())

		_, err := sel.Result()
		assert.ErrorIs(t, err, booking.ErrInvalidSelection)
	})

	t.Run("invalid check-in is rejected and state is kept", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))

		err := sel.ChooseCheckIn(civil.NewDate(2025, time.March, 8))
		assert.ErrorIs(t, err, booking.ErrInvalidSelection)
		assert.Equal(t, booking.NoSelection, sel.State())

		require.NoError(t, sel.ChooseCheckIn(fri07))
		err = sel.ChooseCheckIn(civil.NewDate(2025, time.February, 28))
		assert.ErrorIs(t, err, booking.ErrInvalidSelection)
		got, ok := sel.CheckIn()
		assert.True(t, ok)
		assert.Equal(t, fri07, got)
	})

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))

		_, err := sel.ChooseCheckOut(mon10)
		assert.ErrorIs(t, err, booking.ErrInvalidSelection)
		assert.Equal(t, booking.NoSelection, sel.State())
	})

	t.Run("check-in can be re-chosen before check-out", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))
		require.NoError(t, sel.ChooseCheckIn(fri07))
		require.NoError(t, sel.ChooseCheckIn(fri14))

		got, _ := sel.CheckIn()
		assert.Equal(t, fri14, got)
		assert.Equal(t, booking.CheckInChosen, sel.State())
	})

	t.Run("off-pattern check-out is an invalid selection", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))
		require.NoError(t, sel.ChooseCheckIn(fri07))

		_, err := sel.ChooseCheckOut(civil.NewDate(2025, time.March, 11))
		assert.ErrorIs(t, err, booking.ErrInvalidSelection)
		assert.NotErrorIs(t, err, booking.ErrBookingConflict)
		assert.Equal(t, booking.CheckInChosen, sel.State())
	})

	t.Run("conflicting range is rejected with the booked dates", func(t *testing.T) {
		booked := civil.NewDate(2025, time.March, 11)
		sel := e.NewSelection(newTestCaravan(t, booked))
		require.NoError(t, sel.ChooseCheckIn(fri07))
		_, err := sel.ChooseCheckOut(mon10)
		require.NoError(t, err)

		_, err = sel.ChooseCheckOut(fri14)
		require.ErrorIs(t, err, booking.ErrBookingConflict)

		var conflict *booking.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, []civil.Date{booked}, conflict.Dates)
		assert.Contains(t, err.Error(), "2025-03-11")

		out, _ := sel.CheckOut()
		assert.Equal(t, mon10, out, "previous range stays selected")
		q, ok := sel.Quote()
		assert.True(t, ok)
		assert.Equal(t, booking.TypeWeekend, q.Type)
	})

	t.Run("re-pick clears a stale check-out", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))
		require.NoError(t, sel.ChooseCheckIn(fri07))
		_, err := sel.ChooseCheckOut(mon10)
		require.NoError(t, err)
		require.Equal(t, booking.RangeSelected, sel.State())

		require.NoError(t, sel.ChooseCheckIn(fri14))

		assert.Equal(t, booking.CheckInChosen, sel.State())
		_, ok := sel.CheckOut()
		assert.False(t, ok)
		_, ok = sel.Quote()
		assert.False(t, ok)
	})

	t.Run("re-pick keeps a still-valid check-out", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))
		require.NoError(t, sel.ChooseCheckIn(fri07))
		_, err := sel.ChooseCheckOut(fri14)
		require.NoError(t, err)

		require.NoError(t, sel.ChooseCheckIn(fri07))

		assert.Equal(t, booking.RangeSelected, sel.State())
		q, ok := sel.Quote()
		assert.True(t, ok)
		assert.Equal(t, booking.TypeWeekly, q.Type)
	})

	t.Run("reset returns to no selection", func(t *testing.T) {
		sel := e.NewSelection(newTestCaravan(t))
		require.NoError(t, sel.ChooseCheckIn(fri07))
		_, err := sel.ChooseCheckOut(mon10)
		require.NoError(t, err)

		sel.Reset()

		assert.Equal(t, booking.NoSelection, sel.State())
		_, ok := sel.CheckIn()
		assert.False(t, ok)
	})
}

func TestSelectionStateString(t *testing.T) {
	assert.Equal(t, "no_selection", booking.NoSelection.String())
	assert.Equal(t, "check_in_chosen", booking.CheckInChosen.String())
	assert.Equal(t, "range_selected", booking.RangeSelected.String())
}
