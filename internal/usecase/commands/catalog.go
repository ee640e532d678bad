package commands

import (
	"context"
	"log/slog"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/shared"
)

// CatalogEntry is one caravan as supplied by a catalog file. BlockedDates are
// days taken outside this system, such as phone bookings.
type CatalogEntry struct {
	Slug              string
	Name              string
	Details           caravan.Details
	WeekendTotalPence int64
	WeeklyTotalPence  int64
	BlockedDates      []civil.Date
}

type ImportResult struct {
	Caravans     int
	BlockedDates int64
}

type CatalogCommands interface {
	Import(ctx context.Context, entries []CatalogEntry) (*ImportResult, error)
}

type catalogUseCaseImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewCatalogUseCase(uow shared.UnitOfWork, logger *slog.Logger) CatalogCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogUseCaseImpl{uow: uow, logger: logger}
}

// Import validates every entry before touching the database and then
// upserts them all in one transaction.
func (u *catalogUseCaseImpl) Import(ctx context.Context, entries []CatalogEntry) (*ImportResult, error) {
	items := make([]*caravan.Caravan, 0, len(entries))
	seen := make(map[caravan.Slug]struct{}, len(entries))
	for i, e := range entries {
		item, err := toCaravan(e)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "catalog entry %d (%s)", i, e.Slug), errs.ErrDomainValidation)
		}
		if _, dup := seen[item.Slug()]; dup {
			return nil, errs.Mark(errs.Newf("catalog entry %d: duplicate slug %s", i, e.Slug), errs.ErrDomainValidation)
		}
		seen[item.Slug()] = struct{}{}
		items = append(items, item)
	}

	result := &ImportResult{}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result.Caravans = 0
		result.BlockedDates = 0
		for i, item := range items {
			id, err := tx.Caravans().Upsert(ctx, tx.DB(), item)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			blocked, err := tx.BookedDates().Block(ctx, tx.DB(), id, entries[i].BlockedDates)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			result.Caravans++
			result.BlockedDates += blocked
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("catalog imported", "caravans", result.Caravans, "blocked_dates", result.BlockedDates)
	return result, nil
}

func toCaravan(e CatalogEntry) (*caravan.Caravan, error) {
	slug, err := caravan.NewSlug(e.Slug)
	if err != nil {
		return nil, err
	}
	pricing, err := caravan.NewPricing(caravan.NewMoney(e.WeekendTotalPence), caravan.NewMoney(e.WeeklyTotalPence))
	if err != nil {
		return nil, err
	}
	return caravan.NewCaravan(slug, e.Name, e.Details, pricing)
}
