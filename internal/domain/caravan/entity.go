package caravan

import (
	"strings"
	"time"

	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNameRequired    = errs.New("caravan name is required")
	ErrInvalidCapacity = errs.New("caravan capacity must be positive")
)

type Details struct {
	Description      string
	ShortDescription string
	Sleeps           int
	Berths           int
	Images           []string
	Features         []string
	PetFriendly      bool
}

// Caravan is the hireable unit. Its booked dates are a snapshot taken when
// the caravan was loaded and are never changed by pricing or validation.
type Caravan struct {
	id          uuid.UUID
	slug        Slug
	name        string
	details     Details
	pricing     Pricing
	bookedDates civil.DateSet
	createdAt   time.Time
	updatedAt   time.Time
}

func NewCaravan(slug Slug, name string, details Details, pricing Pricing) (*Caravan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	if details.Sleeps <= 0 || details.Berths < 0 {
		return nil, ErrInvalidCapacity
	}

	return &Caravan{
		id:          uuid.New(),
		slug:        slug,
		name:        name,
		details:     details,
		pricing:     pricing,
		bookedDates: civil.NewDateSet(),
	}, nil
}

func ReconstructCaravan(
	id uuid.UUID,
	slug Slug,
	name string,
	details Details,
	pricing Pricing,
	bookedDates civil.DateSet,
	createdAt, updatedAt time.Time,
) *Caravan {
	if bookedDates == nil {
		bookedDates = civil.NewDateSet()
	}
	return &Caravan{
		id:          id,
		slug:        slug,
		name:        name,
		details:     details,
		pricing:     pricing,
		bookedDates: bookedDates,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (c *Caravan) IsBooked(d civil.Date) bool {
	return c.bookedDates.Contains(d)
}

// BookedDates returns a copy; the snapshot held by the caravan stays intact.
func (c *Caravan) BookedDates() civil.DateSet {
	return c.bookedDates.Clone()
}

func (c *Caravan) ID() uuid.UUID        { return c.id }
func (c *Caravan) Slug() Slug           { return c.slug }
func (c *Caravan) Name() string         { return c.name }
func (c *Caravan) Details() Details     { return c.details }
func (c *Caravan) Pricing() Pricing     { return c.pricing }
func (c *Caravan) CreatedAt() time.Time { return c.createdAt }
func (c *Caravan) UpdatedAt() time.Time { return c.updatedAt }
