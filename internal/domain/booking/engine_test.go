//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fri07 = civil.NewDate(2025, time.March, 7)
	mon10 = civil.NewDate(2025, time.March, 10)
	fri14 = civil.NewDate(2025, time.March, 14)
	mon17 = civil.NewDate(2025, time.March, 17)
	fri21 = civil.NewDate(2025, time.March, 21)
)

// 2025-01-15 puts the season gate on 2025-03-01.
func newTestEngine(t *testing.T, now time.Time) *booking.Engine {
	t.Helper()
	policy := booking.DefaultPolicy()
	return booking.NewEngine(clock.NewMockClock(now), policy, booking.NewFixedPackageCalculator(policy, true, nil))
}

func newTestCaravan(t *testing.T, booked ...civil.Date) *caravan.Caravan {
	t.Helper()
	pricing, err := caravan.NewPricing(caravan.NewMoney(12000), caravan.NewMoney(50000))
	require.NoError(t, err)
	return caravan.ReconstructCaravan(
		uuid.New(), "the-swift", "The Swift",
		caravan.Details{Sleeps: 4, Berths: 2},
		pricing, civil.NewDateSet(booked...),
		time.Now(), time.Now(),
	)
}

func beforeSeason() time.Time {
	return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
}

func TestSeasonGate(t *testing.T) {
	cases := []struct {
		name  string
		today civil.Date
		want  civil.Date
	}{
		{name: "gate day is inclusive", today: civil.NewDate(2025, time.March, 1), want: civil.NewDate(2025, time.March, 1)},
		{name: "day after gate rolls over", today: civil.NewDate(2025, time.March, 2), want: civil.NewDate(2026, time.March, 1)},
		{name: "new year before gate", today: civil.NewDate(2025, time.January, 1), want: civil.NewDate(2025, time.March, 1)},
		{name: "leap day before gate", today: civil.NewDate(2024, time.February, 29), want: civil.NewDate(2024, time.March, 1)},
		{name: "last day of year", today: civil.NewDate(2025, time.December, 31), want: civil.NewDate(2026, time.March, 1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, booking.DefaultSeasonGate.MinBookableDate(tc.today))
		})
	}
}

func TestEngineMinBookableDate(t *testing.T) {
	t.Run("time of day is ignored", func(t *testing.T) {
		e := newTestEngine(t, time.Date(2025, time.March, 1, 23, 59, 59, 0, time.UTC))
		assert.Equal(t, civil.NewDate(2025, time.March, 1), e.MinBookableDate())
	})

	t.Run("today follows the business time zone", func(t *testing.T) {
		policy := booking.DefaultPolicy()
		policy.Location = time.FixedZone("UTC+2", 2*60*60)
		now := time.Date(2025, time.March, 1, 23, 0, 0, 0, time.UTC)
		e := booking.NewEngine(clock.NewMockClock(now), policy, booking.NewFixedPackageCalculator(policy, true, nil))

		assert.Equal(t, civil.NewDate(2025, time.March, 2), e.Today())
		assert.Equal(t, civil.NewDate(2026, time.March, 1), e.MinBookableDate())
	})

	t.Run("configurable gate", func(t *testing.T) {
		policy := booking.DefaultPolicy()
		policy.Gate = booking.SeasonGate{Month: time.April, Day: 1}
		e := booking.NewEngine(clock.NewMockClock(beforeSeason()), policy, booking.NewFixedPackageCalculator(policy, true, nil))

		assert.Equal(t, civil.NewDate(2025, time.April, 1), e.MinBookableDate())
	})
}

func TestIsValidCheckIn(t *testing.T) {
	e := newTestEngine(t, beforeSeason())

	t.Run("friday on or after the gate", func(t *testing.T) {
		assert.True(t, e.IsValidCheckIn(newTestCaravan(t), fri07))
	})

	t.Run("non-fridays are always rejected", func(t *testing.T) {
		item := newTestCaravan(t)
		for _, d := range civil.Range(civil.NewDate(2025, time.March, 8), civil.NewDate(2025, time.March, 13)) {
			assert.False(t, e.IsValidCheckIn(item, d), d.String())
		}
	})

	t.Run("friday before the gate", func(t *testing.T) {
		assert.False(t, e.IsValidCheckIn(newTestCaravan(t), civil.NewDate(2025, time.February, 28)))
	})

	t.Run("booked friday", func(t *testing.T) {
		assert.False(t, e.IsValidCheckIn(newTestCaravan(t, fri07), fri07))
	})

	t.Run("after rollover only next season is open", func(t *testing.T) {
		late := newTestEngine(t, time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC))
		assert.False(t, late.IsValidCheckIn(newTestCaravan(t), fri07))
		assert.True(t, late.IsValidCheckIn(newTestCaravan(t), civil.NewDate(2026, time.March, 6)))
	})
}

func TestIsValidCheckOut(t *testing.T) {
	e := newTestEngine(t, beforeSeason())
	item := newTestCaravan(t)
	checkIn := fri07

	cases := []struct {
		name string
		d    civil.Date
		want bool
	}{
		{name: "monday after three nights", d: mon10, want: true},
		{name: "friday after seven nights", d: fri14, want: true},
		{name: "sunday after two nights", d: civil.NewDate(2025, time.March, 9), want: false},
		{name: "tuesday after four nights", d: civil.NewDate(2025, time.March, 11), want: false},
		{name: "monday after ten nights", d: mon17, want: false},
		{name: "friday after fourteen nights", d: fri21, want: false},
		{name: "same day", d: fri07, want: false},
		{name: "before check-in", d: civil.NewDate(2025, time.March, 3), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.IsValidCheckOut(item, &checkIn, tc.d))
		})
	}

	t.Run("no check-in chosen", func(t *testing.T) {
		for _, d := range civil.Range(fri07, fri21) {
			assert.False(t, e.IsValidCheckOut(item, nil, d), d.String())
			assert.False(t, e.IsValidCheckOut(item, &civil.Date{}, d), d.String())
		}
	})

	t.Run("booked check-out day", func(t *testing.T) {
		assert.False(t, e.IsValidCheckOut(newTestCaravan(t, mon10), &checkIn, mon10))
	})
}

func TestConflictRejection(t *testing.T) {
	e := newTestEngine(t, beforeSeason())
	checkIn := fri07

	for _, booked := range civil.Range(fri07, fri14) {
		t.Run("booked "+booked.String(), func(t *testing.T) {
			item := newTestCaravan(t, booked)

			assert.False(t, e.IsValidCheckOut(item, &checkIn, fri14))
			assert.True(t, booking.HasConflict(item, fri07, fri14))
			assert.Equal(t, []civil.Date{booked}, booking.Conflicts(item, fri07, fri14))
		})
	}

	t.Run("booked date outside the range", func(t *testing.T) {
		item := newTestCaravan(t, civil.NewDate(2025, time.March, 6), civil.NewDate(2025, time.March, 15))
		assert.False(t, booking.HasConflict(item, fri07, fri14))
		assert.Empty(t, booking.Conflicts(item, fri07, fri14))
		assert.True(t, e.IsValidCheckOut(item, &checkIn, fri14))
	})
}

func TestCheckOutCandidates(t *testing.T) {
	e := newTestEngine(t, beforeSeason())

	assert.Equal(t, []civil.Date{mon10, fri14}, e.CheckOutCandidates(newTestCaravan(t), fri07))
	assert.Equal(t, []civil.Date{mon10}, e.CheckOutCandidates(newTestCaravan(t, civil.NewDate(2025, time.March, 12)), fri07))
	assert.Empty(t, e.CheckOutCandidates(newTestCaravan(t, civil.NewDate(2025, time.March, 8)), fri07))
}

func TestEngineQuote(t *testing.T) {
	e := newTestEngine(t, beforeSeason())
	item := newTestCaravan(t)

	weekend, err := e.Quote(item, fri07, mon10)
	require.NoError(t, err)
	assert.Equal(t, booking.TypeWeekend, weekend.Type)
	assert.Equal(t, item.Pricing().WeekendTotal(), weekend.Total)
	assert.Equal(t, 3, weekend.Nights)

	weekly, err := e.Quote(item, fri07, fri14)
	require.NoError(t, err)
	assert.Equal(t, booking.TypeWeekly, weekly.Type)
	assert.Equal(t, item.Pricing().WeeklyTotal(), weekly.Total)
	assert.Equal(t, 7, weekly.Nights)
}
