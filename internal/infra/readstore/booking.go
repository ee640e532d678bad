package readstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/pkg/pgconv"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	bookingViewSQL = `SELECT b.id, b.caravan_id, c.slug, c.name, b.check_in, b.check_out, b.booking_type,
			b.total_pence, b.customer_name, b.customer_email, b.customer_phone, b.status,
			b.created_at, b.updated_at
		FROM bookings b
		JOIN caravans c ON c.id = b.caravan_id
		WHERE b.id = $1`

	bookingListColumns = `SELECT b.id, c.slug, c.name, b.check_in, b.check_out, b.booking_type,
			b.total_pence, b.customer_name, b.status, b.created_at
		FROM bookings b
		JOIN caravans c ON c.id = b.caravan_id
		WHERE ($1::text IS NULL OR c.slug = $1)
		  AND ($2::text IS NULL OR b.status = $2)`

	bookingsFirstPageSQL = bookingListColumns + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $3`

	bookingsKeysetSQL = bookingListColumns + `
		  AND (b.created_at, b.id) < ($3, $4)
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $5`
)

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: dbtx, logger: logger}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	var checkIn, checkOut pgtype.Date
	err := s.db.QueryRow(ctx, bookingViewSQL, id).Scan(
		&v.ID, &v.CaravanID, &v.CaravanSlug, &v.CaravanName, &checkIn, &checkOut, &v.BookingType,
		&v.TotalPence, &v.CustomerName, &v.CustomerEmail, &v.CustomerPhone, &v.Status,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to get booking view", err)
	}
	v.CheckIn = pgconv.DateFromPgtype(checkIn)
	v.CheckOut = pgconv.DateFromPgtype(checkOut)
	return &v, nil
}

func (s *BookingReadStore) ListFirstPage(ctx context.Context, filters queries.BookingFilters, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, bookingsFirstPageSQL,
		pgconv.StringPtrToPgtype(filters.CaravanSlug), pgconv.StringPtrToPgtype(filters.Status), limit)
	if err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to list bookings", err)
	}
	return s.collectListItems(rows)
}

func (s *BookingReadStore) ListKeyset(ctx context.Context, filters queries.BookingFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, bookingsKeysetSQL,
		pgconv.StringPtrToPgtype(filters.CaravanSlug), pgconv.StringPtrToPgtype(filters.Status),
		lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to list bookings", err)
	}
	return s.collectListItems(rows)
}

func (s *BookingReadStore) collectListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookingListItem, error) {
		var item queries.BookingListItem
		var checkIn, checkOut pgtype.Date
		err := row.Scan(&item.ID, &item.CaravanSlug, &item.CaravanName, &checkIn, &checkOut,
			&item.BookingType, &item.TotalPence, &item.CustomerName, &item.Status, &item.CreatedAt)
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		return &item, err
	})
	if err != nil {
		return nil, infra.WrapPgErr(s.logger, "failed to scan bookings", err)
	}
	return items, nil
}
