package booking

import (
	"log/slog"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
)

type Quote struct {
	Type   Type
	Total  caravan.Money
	Nights int
}

type PriceCalculator interface {
	Calculate(pricing caravan.Pricing, checkIn, checkOut civil.Date) (Quote, error)
}

// FixedPackageCalculator prices a stay at its package's flat total.
// Nights that match no package mean the filters were bypassed: strict mode
// panics, otherwise the error is logged and the quote degrades to (None, 0).
type FixedPackageCalculator struct {
	policy Policy
	strict bool
	logger *slog.Logger
}

func NewFixedPackageCalculator(policy Policy, strict bool, logger *slog.Logger) *FixedPackageCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FixedPackageCalculator{
		policy: policy,
		strict: strict,
		logger: logger,
	}
}

func (c *FixedPackageCalculator) Calculate(pricing caravan.Pricing, checkIn, checkOut civil.Date) (Quote, error) {
	nights := checkIn.DaysUntil(checkOut)

	pkg, ok := c.policy.PackageByNights(nights)
	if !ok {
		return c.unreachable(checkIn, checkOut, nights)
	}

	switch pkg.Type {
	case TypeWeekend:
		return Quote{Type: TypeWeekend, Total: pricing.WeekendTotal(), Nights: nights}, nil
	case TypeWeekly:
		return Quote{Type: TypeWeekly, Total: pricing.WeeklyTotal(), Nights: nights}, nil
	default:
		return c.unreachable(checkIn, checkOut, nights)
	}
}

func (c *FixedPackageCalculator) unreachable(checkIn, checkOut civil.Date, nights int) (Quote, error) {
	err := errs.Wrapf(ErrUnreachableNights, "%d nights between %s and %s", nights, checkIn, checkOut)
	if c.strict {
		panic(err)
	}
	c.logger.Error("programmer error: price requested for a stay outside every package",
		"check_in", checkIn.String(),
		"check_out", checkOut.String(),
		"nights", nights,
	)
	return Quote{Type: TypeNone, Total: caravan.NewMoney(0), Nights: nights}, err
}
