package readstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/infra/repository/converter"
	"github.com/deanb221/caravan/internal/pkg/pgconv"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const (
	listCaravansSQL = `SELECT id, slug, name, short_description, sleeps, berths,
			COALESCE(images[1], ''), pet_friendly, weekend_total_pence, weekly_total_pence
		FROM caravans
		ORDER BY name, slug`

	// One statement so the caravan and its days come from the same snapshot.
	loadInventorySQL = `SELECT ` + converter.CaravanColumns + `,
			COALESCE(array_agg(bd.day ORDER BY bd.day) FILTER (WHERE bd.day IS NOT NULL), '{}'::date[])
		FROM caravans c
		LEFT JOIN booked_dates bd ON bd.caravan_id = c.id
		WHERE c.slug = $1
		GROUP BY c.id`
)

type CaravanReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCaravanReadStore(dbtx db.DBTX, logger *slog.Logger) *CaravanReadStore {
	return &CaravanReadStore{db: dbtx, logger: logger}
}

func (s *CaravanReadStore) List(ctx context.Context) ([]*queries.CaravanListItem, error) {
	rows, err := s.db.Query(ctx, listCaravansSQL)
	if err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to list caravans", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.CaravanListItem, error) {
		var item queries.CaravanListItem
		var sleeps, berths int32
		err := row.Scan(&item.ID, &item.Slug, &item.Name, &item.ShortDescription, &sleeps, &berths,
			&item.Thumbnail, &item.PetFriendly, &item.WeekendTotalPence, &item.WeeklyTotalPence)
		item.Sleeps = int(sleeps)
		item.Berths = int(berths)
		return &item, err
	})
	if err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to scan caravans", err)
	}
	return items, nil
}

func (s *CaravanReadStore) LoadInventory(ctx context.Context, slug caravan.Slug) (*caravan.Caravan, error) {
	var row converter.CaravanRow
	var days []time.Time
	targets := append(row.ScanTargets(), &days)

	if err := s.db.QueryRow(ctx, loadInventorySQL, slug.String()).Scan(targets...); err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to load caravan inventory", err)
	}

	item, err := converter.CaravanToDomain(row, pgconv.DatesFromTimes(days))
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "invalid stored caravan", err)
	}
	return item, nil
}
