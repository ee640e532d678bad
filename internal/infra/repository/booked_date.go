package repository

import (
	"context"
	"log/slog"

	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	reserveDaysSQL = `INSERT INTO booked_dates (caravan_id, day, booking_id)
		SELECT $1, d, $2 FROM unnest($3::date[]) AS d`

	// Blocked days have no booking; re-seeding the same day is a no-op.
	blockDaysSQL = `INSERT INTO booked_dates (caravan_id, day)
		SELECT $1, d FROM unnest($2::date[]) AS d
		ON CONFLICT (caravan_id, day) DO NOTHING`

	releaseDaysSQL = `DELETE FROM booked_dates WHERE booking_id = $1`
)

type BookedDateRepository struct {
	logger *slog.Logger
}

func NewBookedDateRepository(logger *slog.Logger) *BookedDateRepository {
	return &BookedDateRepository{logger: logger}
}

// Reserve inserts every day in one statement; the (caravan_id, day) primary
// key turns a lost race into a duplicate-key error.
func (r *BookedDateRepository) Reserve(ctx context.Context, tx db.DBTX, caravanID, bookingID uuid.UUID, dates []civil.Date) error {
	if len(dates) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, reserveDaysSQL, caravanID, bookingID, pgconv.DatesToTimes(dates)); err != nil {
		return infra.WrapPgErr(r.logger, "failed to reserve dates", err)
	}
	return nil
}

func (r *BookedDateRepository) Block(ctx context.Context, tx db.DBTX, caravanID uuid.UUID, dates []civil.Date) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}
	tag, err := tx.Exec(ctx, blockDaysSQL, caravanID, pgconv.DatesToTimes(dates))
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to block dates", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookedDateRepository) Release(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, releaseDaysSQL, bookingID)
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to release dates", err)
	}
	return tag.RowsAffected(), nil
}
