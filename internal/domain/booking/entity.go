package booking

import (
	"time"

	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/errs"

	"github.com/google/uuid"
)

type Booking struct {
	id          uuid.UUID
	caravanID   uuid.UUID
	stay        Stay
	bookingType Type
	total       caravan.Money
	customer    Customer
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func ReconstructBooking(
	id, caravanID uuid.UUID,
	stay Stay,
	bookingType Type,
	total caravan.Money,
	customer Customer,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		caravanID:   caravanID,
		stay:        stay,
		bookingType: bookingType,
		total:       total,
		customer:    customer,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return invalidTransition(b.status, StatusConfirmed)
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	if !b.status.HoldsDates() {
		return invalidTransition(b.status, StatusCancelled)
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) CaravanID() uuid.UUID { return b.caravanID }
func (b *Booking) Stay() Stay           { return b.stay }
func (b *Booking) Type() Type           { return b.bookingType }
func (b *Booking) Total() caravan.Money { return b.total }
func (b *Booking) Customer() Customer   { return b.customer }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

func invalidTransition(from, to Status) error {
	return errs.Wrapf(ErrInvalidStatusTransition, "%s -> %s", from, to)
}
