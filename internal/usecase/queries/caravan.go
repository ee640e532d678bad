package queries

import (
	"context"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/pkg/errs"
)

type CaravanReadStore interface {
	List(ctx context.Context) ([]*CaravanListItem, error)
	// LoadInventory returns the caravan with every date currently held.
	LoadInventory(ctx context.Context, slug caravan.Slug) (*caravan.Caravan, error)
}

type CaravanQueries interface {
	List(ctx context.Context) ([]*CaravanListItem, error)
	GetBySlug(ctx context.Context, slug string) (*CaravanView, error)
}

type caravanQueriesImpl struct {
	store  CaravanReadStore
	engine *booking.Engine
}

func NewCaravanQueries(store CaravanReadStore, engine *booking.Engine) CaravanQueries {
	return &caravanQueriesImpl{store: store, engine: engine}
}

func (q *caravanQueriesImpl) List(ctx context.Context) ([]*CaravanListItem, error) {
	items, err := q.store.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}

func (q *caravanQueriesImpl) GetBySlug(ctx context.Context, slug string) (*CaravanView, error) {
	item, err := loadInventory(ctx, q.store, slug)
	if err != nil {
		return nil, err
	}
	return toCaravanView(item, q.engine), nil
}

// loadInventory maps malformed slugs and missing rows to the same not-found error.
func loadInventory(ctx context.Context, store CaravanReadStore, raw string) (*caravan.Caravan, error) {
	slug, err := caravan.NewSlug(raw)
	if err != nil {
		return nil, errs.ErrCaravanNotFound
	}
	item, err := store.LoadInventory(ctx, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCaravanNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return item, nil
}

func toCaravanView(item *caravan.Caravan, engine *booking.Engine) *CaravanView {
	details := item.Details()
	return &CaravanView{
		ID:                item.ID(),
		Slug:              item.Slug().String(),
		Name:              item.Name(),
		Description:       details.Description,
		ShortDescription:  details.ShortDescription,
		Sleeps:            details.Sleeps,
		Berths:            details.Berths,
		Images:            nonNil(details.Images),
		Features:          nonNil(details.Features),
		PetFriendly:       details.PetFriendly,
		WeekendTotalPence: item.Pricing().WeekendTotal().Pence(),
		WeeklyTotalPence:  item.Pricing().WeeklyTotal().Pence(),
		BookedDates:       item.BookedDates().Sorted(),
		MinBookableDate:   engine.MinBookableDate(),
		CreatedAt:         item.CreatedAt(),
		UpdatedAt:         item.UpdatedAt(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
