package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct {
	loc *time.Location
}

func NewRealClock() Clock {
	return &RealClock{}
}

// NewLocationClock reports wall time in loc, so calendar dates derived from
// Now() follow the business time zone rather than the host's.
func NewLocationClock(loc *time.Location) Clock {
	return &RealClock{loc: loc}
}

func (c *RealClock) Now() time.Time {
	if c.loc != nil {
		return time.Now().In(c.loc)
	}
	return time.Now()
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

func (c *MockClock) AddDays(n int) {
	c.currentTime = c.currentTime.AddDate(0, 0, n)
}
