package metrics

import (
	"errors"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
)

type countingCalculator struct {
	next    booking.PriceCalculator
	metrics *Metrics
}

// InstrumentCalculator counts unreachable-nights results from next. A strict
// calculator panics before returning, so only lenient mode is counted.
func InstrumentCalculator(next booking.PriceCalculator, m *Metrics) booking.PriceCalculator {
	return &countingCalculator{next: next, metrics: m}
}

func (c *countingCalculator) Calculate(pricing caravan.Pricing, checkIn, checkOut civil.Date) (booking.Quote, error) {
	q, err := c.next.Calculate(pricing, checkIn, checkOut)
	if errors.Is(err, booking.ErrUnreachableNights) {
		c.metrics.unreachableNights.Inc()
	}
	return q, err
}
