//go:build unit

package clock_test

import (
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
)

func TestLocationClock(t *testing.T) {
	loc := time.FixedZone("BST", 60*60)

	now := clock.NewLocationClock(loc).Now()
	assert.Equal(t, loc, now.Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, time.February, 28, 9, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)

	c.AddDays(1)
	assert.Equal(t, time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC), c.Now())

	c.Add(time.Hour)
	assert.Equal(t, 10, c.Now().Hour())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}
