package response

import (
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	CaravanID        uuid.UUID  `json:"caravanId"`
	CaravanSlug      string     `json:"caravanSlug"`
	CaravanName      string     `json:"caravanName"`
	CheckIn          civil.Date `json:"checkIn"`
	CheckOut         civil.Date `json:"checkOut"`
	CollectionWindow string     `json:"collectionWindow"`
	ReturnWindow     string     `json:"returnWindow"`
	BookingType      string     `json:"bookingType"`
	TotalPence       int64      `json:"totalPence"`
	CustomerName     string     `json:"customerName"`
	CustomerEmail    string     `json:"customerEmail"`
	CustomerPhone    string     `json:"customerPhone"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings   []*queries.BookingListItem `json:"bookings"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:               v.ID,
		CaravanID:        v.CaravanID,
		CaravanSlug:      v.CaravanSlug,
		CaravanName:      v.CaravanName,
		CheckIn:          v.CheckIn,
		CheckOut:         v.CheckOut,
		CollectionWindow: booking.CollectionWindow,
		ReturnWindow:     booking.ReturnWindow,
		BookingType:      v.BookingType,
		TotalPence:       v.TotalPence,
		CustomerName:     v.CustomerName,
		CustomerEmail:    v.CustomerEmail,
		CustomerPhone:    v.CustomerPhone,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	if items == nil {
		items = []*queries.BookingListItem{}
	}
	resp := &BookingListResponse{Bookings: items}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}
