package converter

import (
	"time"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"

	"github.com/google/uuid"
)

// CaravanColumns must stay in step with CaravanRow.ScanTargets.
const CaravanColumns = `c.id, c.slug, c.name, c.description, c.short_description, c.sleeps, c.berths,
	c.images, c.features, c.pet_friendly, c.weekend_total_pence, c.weekly_total_pence,
	c.created_at, c.updated_at`

type CaravanRow struct {
	ID                uuid.UUID
	Slug              string
	Name              string
	Description       string
	ShortDescription  string
	Sleeps            int32
	Berths            int32
	Images            []string
	Features          []string
	PetFriendly       bool
	WeekendTotalPence int64
	WeeklyTotalPence  int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *CaravanRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.Slug, &r.Name, &r.Description, &r.ShortDescription, &r.Sleeps, &r.Berths,
		&r.Images, &r.Features, &r.PetFriendly, &r.WeekendTotalPence, &r.WeeklyTotalPence,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

func CaravanToDomain(row CaravanRow, booked []civil.Date) (*caravan.Caravan, error) {
	slug, err := caravan.NewSlug(row.Slug)
	if err != nil {
		return nil, errs.Wrapf(err, "stored caravan %s", row.ID)
	}
	pricing, err := caravan.NewPricing(caravan.NewMoney(row.WeekendTotalPence), caravan.NewMoney(row.WeeklyTotalPence))
	if err != nil {
		return nil, errs.Wrapf(err, "stored caravan %s", row.ID)
	}

	details := caravan.Details{
		Description:      row.Description,
		ShortDescription: row.ShortDescription,
		Sleeps:           int(row.Sleeps),
		Berths:           int(row.Berths),
		Images:           row.Images,
		Features:         row.Features,
		PetFriendly:      row.PetFriendly,
	}

	return caravan.ReconstructCaravan(
		row.ID,
		slug,
		row.Name,
		details,
		pricing,
		civil.NewDateSet(booked...),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

// CaravanToRow flattens a caravan for insert or upsert.
func CaravanToRow(c *caravan.Caravan) CaravanRow {
	details := c.Details()
	return CaravanRow{
		ID:                c.ID(),
		Slug:              c.Slug().String(),
		Name:              c.Name(),
		Description:       details.Description,
		ShortDescription:  details.ShortDescription,
		Sleeps:            int32(details.Sleeps), // #nosec G115 -- capacity is small
		Berths:            int32(details.Berths), // #nosec G115 -- capacity is small
		Images:            emptyIfNil(details.Images),
		Features:          emptyIfNil(details.Features),
		PetFriendly:       details.PetFriendly,
		WeekendTotalPence: c.Pricing().WeekendTotal().Pence(),
		WeeklyTotalPence:  c.Pricing().WeeklyTotal().Pence(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
