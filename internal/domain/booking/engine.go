package booking

import (
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/clock"
)

// Inventory is what the engine needs from a hireable item. *caravan.Caravan
// satisfies it.
type Inventory interface {
	IsBooked(d civil.Date) bool
	Pricing() caravan.Pricing
}

type Engine struct {
	clock      clock.Clock
	policy     Policy
	calculator PriceCalculator
}

func NewEngine(clk clock.Clock, policy Policy, calculator PriceCalculator) *Engine {
	return &Engine{
		clock:      clk,
		policy:     policy,
		calculator: calculator,
	}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) Today() civil.Date {
	now := e.clock.Now()
	if e.policy.Location != nil {
		now = now.In(e.policy.Location)
	}
	return civil.DateOf(now)
}

func (e *Engine) MinBookableDate() civil.Date {
	return e.policy.Gate.MinBookableDate(e.Today())
}

func (e *Engine) IsValidCheckIn(item Inventory, d civil.Date) bool {
	return e.checkInRejection(item, d) == ""
}

func (e *Engine) checkInRejection(item Inventory, d civil.Date) string {
	switch {
	case item.IsBooked(d):
		return "date is already booked"
	case d.Weekday() != e.policy.CheckInDay:
		return "check-in must be on a " + e.policy.CheckInDay.String()
	case d.Before(e.MinBookableDate()):
		return "bookings open from " + e.MinBookableDate().String()
	default:
		return ""
	}
}

// IsValidCheckOut is always false without a check-in. Otherwise d must close
// one of the packages and no date from checkIn to d may be booked.
func (e *Engine) IsValidCheckOut(item Inventory, checkIn *civil.Date, d civil.Date) bool {
	if checkIn == nil || checkIn.IsZero() {
		return false
	}
	if item.IsBooked(d) {
		return false
	}
	if _, ok := e.policy.PackageFor(*checkIn, d); !ok {
		return false
	}
	return !HasConflict(item, *checkIn, d)
}

// CheckOutCandidates lists the valid check-out dates for checkIn in order.
func (e *Engine) CheckOutCandidates(item Inventory, checkIn civil.Date) []civil.Date {
	var out []civil.Date
	for n := 1; n <= e.policy.MaxNights(); n++ {
		d := checkIn.AddDays(n)
		if e.IsValidCheckOut(item, &checkIn, d) {
			out = append(out, d)
		}
	}
	return out
}

func (e *Engine) Quote(item Inventory, checkIn, checkOut civil.Date) (Quote, error) {
	return e.calculator.Calculate(item.Pricing(), checkIn, checkOut)
}

func (e *Engine) NewSelection(item Inventory) *Selection {
	return &Selection{engine: e, item: item}
}

// Conflicts returns the booked dates in [start, end], both ends included.
func Conflicts(item Inventory, start, end civil.Date) []civil.Date {
	var hits []civil.Date
	for _, d := range civil.Range(start, end) {
		if item.IsBooked(d) {
			hits = append(hits, d)
		}
	}
	return hits
}

func HasConflict(item Inventory, start, end civil.Date) bool {
	for _, d := range civil.Range(start, end) {
		if item.IsBooked(d) {
			return true
		}
	}
	return false
}
