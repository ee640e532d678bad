package components

import (
	"log/slog"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/infra/metrics"
	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/pkg/config"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		NewBookingClock,
		NewPolicy,
		NewPriceCalculator,
		booking.NewEngine,
		booking.NewFactory,
	),
)

// NewBookingClock reports time in the business time zone so "today" matches
// the calendar customers see.
func NewBookingClock(cfg config.Config) (clock.Clock, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewLocationClock(loc), nil
}

func NewPolicy(cfg config.Config) (booking.Policy, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return booking.Policy{}, err
	}
	policy := booking.DefaultPolicy()
	policy.Gate = booking.SeasonGate{
		Month: time.Month(cfg.Booking.SeasonOpenMonth),
		Day:   cfg.Booking.SeasonOpenDay,
	}
	policy.Location = loc
	return policy, nil
}

func NewPriceCalculator(policy booking.Policy, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) booking.PriceCalculator {
	calc := booking.NewFixedPackageCalculator(policy, cfg.StrictInvariants(), logger)
	return metrics.InstrumentCalculator(calc, m)
}
