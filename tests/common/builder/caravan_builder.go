//go:build unit || e2e

package builder

import (
	"time"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/commands"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/google/uuid"
)

type CaravanBuilder struct {
	ID                uuid.UUID
	Slug              string
	Name              string
	Details           caravan.Details
	WeekendTotalPence int64
	WeeklyTotalPence  int64
	BookedDates       []civil.Date
	CreatedAt         time.Time
}

func NewCaravanBuilder() *CaravanBuilder {
	return &CaravanBuilder{
		ID:   uuid.New(),
		Slug: "the-swift",
		Name: "The Swift",
		Details: caravan.Details{
			Description:      "A six-berth static caravan a short walk from the beach.",
			ShortDescription: "Six berth, sea views",
			Sleeps:           6,
			Berths:           3,
			Images:           []string{"/images/swift-1.jpg", "/images/swift-2.jpg"},
			Features:         []string{"Double glazing", "Central heating"},
			PetFriendly:      true,
		},
		WeekendTotalPence: 12000,
		WeeklyTotalPence:  50000,
		CreatedAt:         time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *CaravanBuilder) With(mutate func(*CaravanBuilder)) *CaravanBuilder {
	mutate(b)
	return b
}

func (b *CaravanBuilder) WithSlug(slug string) *CaravanBuilder {
	b.Slug = slug
	return b
}

func (b *CaravanBuilder) WithBookedDates(dates ...civil.Date) *CaravanBuilder {
	b.BookedDates = append(b.BookedDates, dates...)
	return b
}

func (b *CaravanBuilder) WithPricing(weekendPence, weeklyPence int64) *CaravanBuilder {
	b.WeekendTotalPence = weekendPence
	b.WeeklyTotalPence = weeklyPence
	return b
}

// Build methods
func (b *CaravanBuilder) BuildDomain() *caravan.Caravan {
	pricing, err := caravan.NewPricing(caravan.NewMoney(b.WeekendTotalPence), caravan.NewMoney(b.WeeklyTotalPence))
	if err != nil {
		panic(err)
	}
	return caravan.ReconstructCaravan(
		b.ID,
		caravan.Slug(b.Slug),
		b.Name,
		b.Details,
		pricing,
		civil.NewDateSet(b.BookedDates...),
		b.CreatedAt,
		b.CreatedAt,
	)
}

func (b *CaravanBuilder) BuildCatalogEntry() commands.CatalogEntry {
	return commands.CatalogEntry{
		Slug:              b.Slug,
		Name:              b.Name,
		Details:           b.Details,
		WeekendTotalPence: b.WeekendTotalPence,
		WeeklyTotalPence:  b.WeeklyTotalPence,
		BlockedDates:      b.BookedDates,
	}
}

func (b *CaravanBuilder) BuildListItem() *queries.CaravanListItem {
	return &queries.CaravanListItem{
		ID:                b.ID,
		Slug:              b.Slug,
		Name:              b.Name,
		ShortDescription:  b.Details.ShortDescription,
		Sleeps:            b.Details.Sleeps,
		Berths:            b.Details.Berths,
		Thumbnail:         b.Details.Images[0],
		PetFriendly:       b.Details.PetFriendly,
		WeekendTotalPence: b.WeekendTotalPence,
		WeeklyTotalPence:  b.WeeklyTotalPence,
	}
}

func (b *CaravanBuilder) BuildView(minBookable civil.Date) *queries.CaravanView {
	return &queries.CaravanView{
		ID:                b.ID,
		Slug:              b.Slug,
		Name:              b.Name,
		Description:       b.Details.Description,
		ShortDescription:  b.Details.ShortDescription,
		Sleeps:            b.Details.Sleeps,
		Berths:            b.Details.Berths,
		Images:            b.Details.Images,
		Features:          b.Details.Features,
		PetFriendly:       b.Details.PetFriendly,
		WeekendTotalPence: b.WeekendTotalPence,
		WeeklyTotalPence:  b.WeeklyTotalPence,
		BookedDates:       civil.NewDateSet(b.BookedDates...).Sorted(),
		MinBookableDate:   minBookable,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}
