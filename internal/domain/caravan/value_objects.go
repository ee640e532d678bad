package caravan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/deanb221/caravan/internal/pkg/errs"
)

var (
	ErrNegativeMoney = errs.New("money cannot be negative")
	ErrInvalidSlug   = errs.New("invalid slug")
)

// Money is an amount in pence.
type Money struct {
	pence int64
}

func NewMoney(pence int64) Money {
	return Money{pence: pence}
}

func NewMoneyFromPounds(pounds int64) (Money, error) {
	if pounds < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{pence: pounds * 100}, nil
}

func (m Money) Pence() int64 {
	return m.pence
}

func (m Money) IsZero() bool {
	return m.pence == 0
}

func (m Money) String() string {
	return fmt.Sprintf("£%d.%02d", m.pence/100, m.pence%100)
}

// Pricing holds flat package totals. Neither is a nightly rate.
type Pricing struct {
	weekendTotal Money
	weeklyTotal  Money
}

func NewPricing(weekendTotal, weeklyTotal Money) (Pricing, error) {
	if weekendTotal.pence < 0 || weeklyTotal.pence < 0 {
		return Pricing{}, ErrNegativeMoney
	}
	return Pricing{weekendTotal: weekendTotal, weeklyTotal: weeklyTotal}, nil
}

func (p Pricing) WeekendTotal() Money { return p.weekendTotal }
func (p Pricing) WeeklyTotal() Money  { return p.weeklyTotal }

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Slug string

func NewSlug(s string) (Slug, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if !slugPattern.MatchString(s) {
		return "", errs.Wrapf(ErrInvalidSlug, "slug %q", s)
	}
	return Slug(s), nil
}

func (s Slug) String() string {
	return string(s)
}
