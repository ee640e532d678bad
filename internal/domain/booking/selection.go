package booking

import (
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
)

type SelectionState int

const (
	NoSelection SelectionState = iota
	CheckInChosen
	RangeSelected
)

func (s SelectionState) String() string {
	switch s {
	case NoSelection:
		return "no_selection"
	case CheckInChosen:
		return "check_in_chosen"
	case RangeSelected:
		return "range_selected"
	default:
		return "unknown"
	}
}

// Result is the priced range handed to booking submission.
type Result struct {
	CheckIn  civil.Date
	CheckOut civil.Date
	Type     Type
	Total    caravan.Money
	Nights   int
}

// Selection tracks one booker's date picks against a fixed snapshot of the
// item. Rejected picks return an error and leave the selection unchanged.
type Selection struct {
	engine   *Engine
	item     Inventory
	checkIn  civil.Date
	checkOut civil.Date
	quote    Quote
}

func (s *Selection) State() SelectionState {
	switch {
	case s.checkIn.IsZero():
		return NoSelection
	case s.checkOut.IsZero():
		return CheckInChosen
	default:
		return RangeSelected
	}
}

func (s *Selection) ChooseCheckIn(d civil.Date) error {
	if reason := s.engine.checkInRejection(s.item, d); reason != "" {
		return invalidSelection("check-in %s: %s", d, reason)
	}

	s.checkIn = d
	if s.checkOut.IsZero() {
		return nil
	}

	if !s.engine.IsValidCheckOut(s.item, &s.checkIn, s.checkOut) {
		s.clearCheckOut()
		return nil
	}
	quote, err := s.engine.Quote(s.item, s.checkIn, s.checkOut)
	if err != nil {
		s.clearCheckOut()
		return nil
	}
	s.quote = quote
	return nil
}

// ChooseCheckOut re-validates the whole range even though the check-out
// filter already excludes conflicting dates.
func (s *Selection) ChooseCheckOut(d civil.Date) (Quote, error) {
	if s.checkIn.IsZero() {
		return Quote{}, invalidSelection("check-out %s: choose a check-in date first", d)
	}
	if _, ok := s.engine.policy.PackageFor(s.checkIn, d); !ok {
		return Quote{}, invalidSelection("check-out %s: no package runs from %s to that date", d, s.checkIn)
	}
	if hits := Conflicts(s.item, s.checkIn, d); len(hits) > 0 {
		return Quote{}, &ConflictError{Dates: hits}
	}

	quote, err := s.engine.Quote(s.item, s.checkIn, d)
	if err != nil {
		return Quote{}, err
	}

	s.checkOut = d
	s.quote = quote
	return quote, nil
}

func (s *Selection) Reset() {
	s.checkIn = civil.Date{}
	s.clearCheckOut()
}

func (s *Selection) CheckIn() (civil.Date, bool) {
	return s.checkIn, !s.checkIn.IsZero()
}

func (s *Selection) CheckOut() (civil.Date, bool) {
	return s.checkOut, !s.checkOut.IsZero()
}

func (s *Selection) Quote() (Quote, bool) {
	return s.quote, s.State() == RangeSelected
}

// Result is only available once a range has been selected.
func (s *Selection) Result() (Result, error) {
	if s.State() != RangeSelected {
		return Result{}, invalidSelection("selection is %s, a full range is required", s.State())
	}
	return Result{
		CheckIn:  s.checkIn,
		CheckOut: s.checkOut,
		Type:     s.quote.Type,
		Total:    s.quote.Total,
		Nights:   s.quote.Nights,
	}, nil
}

func (s *Selection) clearCheckOut() {
	s.checkOut = civil.Date{}
	s.quote = Quote{}
}
