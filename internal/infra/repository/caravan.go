package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/infra/repository/converter"
	"github.com/deanb221/caravan/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	lockCaravanBySlugSQL = `SELECT ` + converter.CaravanColumns + `
		FROM caravans c WHERE c.slug = $1 FOR UPDATE`

	findCaravanByIDSQL = `SELECT ` + converter.CaravanColumns + `
		FROM caravans c WHERE c.id = $1`

	listBookedDaysSQL = `SELECT day FROM booked_dates WHERE caravan_id = $1 ORDER BY day`

	upsertCaravanSQL = `INSERT INTO caravans (
			id, slug, name, description, short_description, sleeps, berths, images, features,
			pet_friendly, weekend_total_pence, weekly_total_pence, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			short_description = EXCLUDED.short_description,
			sleeps = EXCLUDED.sleeps,
			berths = EXCLUDED.berths,
			images = EXCLUDED.images,
			features = EXCLUDED.features,
			pet_friendly = EXCLUDED.pet_friendly,
			weekend_total_pence = EXCLUDED.weekend_total_pence,
			weekly_total_pence = EXCLUDED.weekly_total_pence,
			updated_at = EXCLUDED.updated_at
		RETURNING id`
)

type CaravanRepository struct {
	logger *slog.Logger
}

func NewCaravanRepository(logger *slog.Logger) *CaravanRepository {
	return &CaravanRepository{logger: logger}
}

// LockBySlug reads booked dates only once the row lock is held, so a
// concurrent booking that committed first is always visible.
func (r *CaravanRepository) LockBySlug(ctx context.Context, tx db.DBTX, slug caravan.Slug) (*caravan.Caravan, error) {
	var row converter.CaravanRow
	if err := tx.QueryRow(ctx, lockCaravanBySlugSQL, slug.String()).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to lock caravan", err)
	}
	return r.withBookedDates(ctx, tx, row)
}

func (r *CaravanRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*caravan.Caravan, error) {
	var row converter.CaravanRow
	if err := tx.QueryRow(ctx, findCaravanByIDSQL, id).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find caravan", err)
	}
	return r.withBookedDates(ctx, tx, row)
}

func (r *CaravanRepository) Upsert(ctx context.Context, tx db.DBTX, c *caravan.Caravan) (uuid.UUID, error) {
	row := converter.CaravanToRow(c)
	now := time.Now().UTC()

	var id uuid.UUID
	err := tx.QueryRow(ctx, upsertCaravanSQL,
		row.ID, row.Slug, row.Name, row.Description, row.ShortDescription, row.Sleeps, row.Berths,
		row.Images, row.Features, row.PetFriendly, row.WeekendTotalPence, row.WeeklyTotalPence, now,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapPgErr(r.logger, "failed to upsert caravan", err)
	}
	return id, nil
}

func (r *CaravanRepository) withBookedDates(ctx context.Context, tx db.DBTX, row converter.CaravanRow) (*caravan.Caravan, error) {
	rows, err := tx.Query(ctx, listBookedDaysSQL, row.ID)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to load booked dates", err)
	}
	days, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan booked dates", err)
	}

	item, err := converter.CaravanToDomain(row, pgconv.DatesFromTimes(days))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid stored caravan", err)
	}
	return item, nil
}

