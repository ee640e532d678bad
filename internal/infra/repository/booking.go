package repository

import (
	"context"
	"log/slog"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const (
	insertBookingSQL = `INSERT INTO bookings (
			id, caravan_id, check_in, check_out, booking_type, total_pence,
			customer_name, customer_email, customer_phone, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	findBookingForUpdateSQL = `SELECT ` + converter.BookingColumns + `
		FROM bookings b WHERE b.id = $1 FOR UPDATE`

	updateBookingStatusSQL = `UPDATE bookings SET status = $2, updated_at = $3 WHERE id = $1`
)

type BookingRepository struct {
	logger *slog.Logger
}

func NewBookingRepository(logger *slog.Logger) *BookingRepository {
	return &BookingRepository{logger: logger}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	row := converter.BookingToRow(b)
	_, err := tx.Exec(ctx, insertBookingSQL,
		row.ID, row.CaravanID, row.CheckIn, row.CheckOut, row.BookingType, row.TotalPence,
		row.CustomerName, row.CustomerEmail, row.CustomerPhone, row.Status, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := tx.QueryRow(ctx, findBookingForUpdateSQL, id).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find booking", err)
	}
	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid stored booking", err)
	}
	return b, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	tag, err := tx.Exec(ctx, updateBookingStatusSQL, b.ID(), b.Status().String(), b.UpdatedAt())
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}
