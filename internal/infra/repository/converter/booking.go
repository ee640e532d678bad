package converter

import (
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const BookingColumns = `b.id, b.caravan_id, b.check_in, b.check_out, b.booking_type, b.total_pence,
	b.customer_name, b.customer_email, b.customer_phone, b.status, b.created_at, b.updated_at`

type BookingRow struct {
	ID            uuid.UUID
	CaravanID     uuid.UUID
	CheckIn       pgtype.Date
	CheckOut      pgtype.Date
	BookingType   string
	TotalPence    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *BookingRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.CaravanID, &r.CheckIn, &r.CheckOut, &r.BookingType, &r.TotalPence,
		&r.CustomerName, &r.CustomerEmail, &r.CustomerPhone, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	}
}

func BookingToRow(b *booking.Booking) BookingRow {
	return BookingRow{
		ID:            b.ID(),
		CaravanID:     b.CaravanID(),
		CheckIn:       pgconv.DateToPgtype(b.Stay().CheckIn()),
		CheckOut:      pgconv.DateToPgtype(b.Stay().CheckOut()),
		BookingType:   string(b.Type()),
		TotalPence:    b.Total().Pence(),
		CustomerName:  b.Customer().Name(),
		CustomerEmail: b.Customer().Email(),
		CustomerPhone: b.Customer().Phone(),
		Status:        b.Status().String(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

func BookingToDomain(row BookingRow) (*booking.Booking, error) {
	stay, err := booking.NewStay(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut))
	if err != nil {
		return nil, errs.Wrapf(err, "stored booking %s", row.ID)
	}
	customer, err := booking.NewCustomer(row.CustomerName, row.CustomerEmail, row.CustomerPhone)
	if err != nil {
		return nil, errs.Wrapf(err, "stored booking %s", row.ID)
	}
	bookingType := booking.Type(row.BookingType)
	status := booking.Status(row.Status)
	if !bookingType.IsValid() || !status.IsValid() {
		return nil, errs.Newf("stored booking %s has type %q status %q", row.ID, row.BookingType, row.Status)
	}

	return booking.ReconstructBooking(
		row.ID,
		row.CaravanID,
		stay,
		bookingType,
		caravan.NewMoney(row.TotalPence),
		customer,
		status,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
