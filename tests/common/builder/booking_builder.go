//go:build unit || e2e

package builder

import (
	"time"

	reqdto "github.com/deanb221/caravan/internal/handler/dto/request"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/commands"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	CaravanID     uuid.UUID
	CaravanSlug   string
	CaravanName   string
	CheckIn       civil.Date
	CheckOut      civil.Date
	BookingType   string
	TotalPence    int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        string
	CreatedAt     time.Time
}

// NewBookingBuilder defaults to the first weekend of the 2025 season.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:            uuid.New(),
		CaravanID:     uuid.New(),
		CaravanSlug:   "the-swift",
		CaravanName:   "The Swift",
		CheckIn:       civil.NewDate(2025, time.March, 7),
		CheckOut:      civil.NewDate(2025, time.March, 10),
		BookingType:   "weekend",
		TotalPence:    12000,
		CustomerName:  "Alex Morgan",
		CustomerEmail: "alex@example.com",
		CustomerPhone: "07700900123",
		Status:        "pending",
		CreatedAt:     time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStay(checkIn, checkOut civil.Date, bookingType string, totalPence int64) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	b.BookingType = bookingType
	b.TotalPence = totalPence
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

// Build methods
func (b *BookingBuilder) BuildSubmitRequestDTO() reqdto.SubmitBookingRequest {
	return reqdto.SubmitBookingRequest{
		CaravanSlug:   b.CaravanSlug,
		CheckIn:       b.CheckIn.String(),
		CheckOut:      b.CheckOut.String(),
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
	}
}

func (b *BookingBuilder) BuildSubmitCommand() commands.SubmitBookingRequest {
	return commands.SubmitBookingRequest{
		CaravanSlug:   b.CaravanSlug,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:            b.ID,
		CaravanID:     b.CaravanID,
		CaravanSlug:   b.CaravanSlug,
		CaravanName:   b.CaravanName,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		BookingType:   b.BookingType,
		TotalPence:    b.TotalPence,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           b.ID,
		CaravanSlug:  b.CaravanSlug,
		CaravanName:  b.CaravanName,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		BookingType:  b.BookingType,
		TotalPence:   b.TotalPence,
		CustomerName: b.CustomerName,
		Status:       b.Status,
		CreatedAt:    b.CreatedAt,
	}
}
