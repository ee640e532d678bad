package shared

import (
	"errors"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"

	"github.com/google/uuid"
)

const (
	NotificationKindEmail = "email"

	EventBookingRequested = "booking_requested"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"

	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusDead   = "dead"
)

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int
	RunAt    time.Time
}

// BookingNotification is the outbox payload sent to staff.
type BookingNotification struct {
	Event            string    `json:"event"`
	BookingID        uuid.UUID `json:"bookingId"`
	CaravanID        uuid.UUID `json:"caravanId"`
	CaravanName      string    `json:"caravanName"`
	CheckIn          string    `json:"checkIn"`
	CheckOut         string    `json:"checkOut"`
	CollectionWindow string    `json:"collectionWindow"`
	ReturnWindow     string    `json:"returnWindow"`
	BookingType      string    `json:"bookingType"`
	TotalPence       int64     `json:"totalPence"`
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	CustomerPhone    string    `json:"customerPhone"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func NewBookingNotification(event string, b *booking.Booking, c *caravan.Caravan, now time.Time) BookingNotification {
	return BookingNotification{
		Event:            event,
		BookingID:        b.ID(),
		CaravanID:        c.ID(),
		CaravanName:      c.Name(),
		CheckIn:          b.Stay().CheckIn().String(),
		CheckOut:         b.Stay().CheckOut().String(),
		CollectionWindow: booking.CollectionWindow,
		ReturnWindow:     booking.ReturnWindow,
		BookingType:      b.Type().String(),
		TotalPence:       b.Total().Pence(),
		CustomerName:     b.Customer().Name(),
		CustomerEmail:    b.Customer().Email(),
		CustomerPhone:    b.Customer().Phone(),
		Status:           b.Status().String(),
		OccurredAt:       now,
	}
}

// Metrics receives engine and booking outcomes.
type Metrics interface {
	QuoteIssued(bookingType booking.Type)
	SelectionRejected(reason string)
	BookingSubmitted(bookingType booking.Type)
}

type NopMetrics struct{}

func (NopMetrics) QuoteIssued(booking.Type)      {}
func (NopMetrics) SelectionRejected(string)      {}
func (NopMetrics) BookingSubmitted(booking.Type) {}

// RejectionReason labels an engine error for metrics.
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, booking.ErrBookingConflict):
		return "booking_conflict"
	case errors.Is(err, booking.ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, booking.ErrUnreachableNights):
		return "unreachable_nights"
	default:
		return "other"
	}
}
