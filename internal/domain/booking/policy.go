package booking

import (
	"time"

	"github.com/deanb221/caravan/internal/pkg/civil"
)

// SeasonGate is the yearly opening date for new check-ins.
type SeasonGate struct {
	Month time.Month
	Day   int
}

var DefaultSeasonGate = SeasonGate{Month: time.March, Day: 1}

// MinBookableDate returns this year's gate while today is on or before it,
// and next year's gate once today has passed it.
func (g SeasonGate) MinBookableDate(today civil.Date) civil.Date {
	gate := civil.NewDate(today.Year(), g.Month, g.Day)
	if today.After(gate) {
		return civil.NewDate(today.Year()+1, g.Month, g.Day)
	}
	return gate
}

// Package is a fixed-length stay sold at a flat total.
type Package struct {
	Type        Type
	Nights      int
	CheckOutDay time.Weekday
}

type Policy struct {
	CheckInDay time.Weekday
	Packages   []Package
	Gate       SeasonGate
	// Location decides which calendar day "now" falls on.
	Location *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		CheckInDay: time.Friday,
		Packages: []Package{
			{Type: TypeWeekend, Nights: 3, CheckOutDay: time.Monday},
			{Type: TypeWeekly, Nights: 7, CheckOutDay: time.Friday},
		},
		Gate:     DefaultSeasonGate,
		Location: time.UTC,
	}
}

func (p Policy) PackageByNights(nights int) (Package, bool) {
	for _, pkg := range p.Packages {
		if pkg.Nights == nights {
			return pkg, true
		}
	}
	return Package{}, false
}

// PackageFor matches a check-in/check-out pair against the package table.
func (p Policy) PackageFor(checkIn, checkOut civil.Date) (Package, bool) {
	pkg, ok := p.PackageByNights(checkIn.DaysUntil(checkOut))
	if !ok || checkOut.Weekday() != pkg.CheckOutDay {
		return Package{}, false
	}
	return pkg, true
}

func (p Policy) MaxNights() int {
	longest := 0
	for _, pkg := range p.Packages {
		longest = max(longest, pkg.Nights)
	}
	return longest
}
