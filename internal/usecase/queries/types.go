package queries

import (
	"time"

	"github.com/deanb221/caravan/internal/pkg/civil"

	"github.com/google/uuid"
)

// CaravanListItem is the catalog card shown on the listing page
type CaravanListItem struct {
	ID                uuid.UUID `json:"id"`
	Slug              string    `json:"slug"`
	Name              string    `json:"name"`
	ShortDescription  string    `json:"shortDescription"`
	Sleeps            int       `json:"sleeps"`
	Berths            int       `json:"berths"`
	Thumbnail         string    `json:"thumbnail,omitempty"`
	PetFriendly       bool      `json:"petFriendly"`
	WeekendTotalPence int64     `json:"weekendTotalPence"`
	WeeklyTotalPence  int64     `json:"weeklyTotalPence"`
}

// CaravanView is one caravan with its current booked dates
type CaravanView struct {
	ID                uuid.UUID    `json:"id"`
	Slug              string       `json:"slug"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	ShortDescription  string       `json:"shortDescription"`
	Sleeps            int          `json:"sleeps"`
	Berths            int          `json:"berths"`
	Images            []string     `json:"images"`
	Features          []string     `json:"features"`
	PetFriendly       bool         `json:"petFriendly"`
	WeekendTotalPence int64        `json:"weekendTotalPence"`
	WeeklyTotalPence  int64        `json:"weeklyTotalPence"`
	BookedDates       []civil.Date `json:"bookedDates"`
	MinBookableDate   civil.Date   `json:"minBookableDate"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

type CalendarDay struct {
	Date           civil.Date `json:"date"`
	Booked         bool       `json:"booked"`
	CheckInAllowed bool       `json:"checkInAllowed"`
}

type CalendarView struct {
	CaravanSlug     string        `json:"caravanSlug"`
	MinBookableDate civil.Date    `json:"minBookableDate"`
	From            civil.Date    `json:"from"`
	To              civil.Date    `json:"to"`
	Days            []CalendarDay `json:"days"`
}

type CheckOutOption struct {
	Date        civil.Date `json:"date"`
	BookingType string     `json:"bookingType"`
	TotalPence  int64      `json:"totalPence"`
	Nights      int        `json:"nights"`
}

type CheckOutOptionsView struct {
	CaravanSlug string           `json:"caravanSlug"`
	CheckIn     civil.Date       `json:"checkIn"`
	Options     []CheckOutOption `json:"options"`
}

type QuoteView struct {
	CaravanSlug      string     `json:"caravanSlug"`
	CheckIn          civil.Date `json:"checkIn"`
	CheckOut         civil.Date `json:"checkOut"`
	BookingType      string     `json:"bookingType"`
	TotalPence       int64      `json:"totalPence"`
	Nights           int        `json:"nights"`
	CollectionWindow string     `json:"collectionWindow"`
	ReturnWindow     string     `json:"returnWindow"`
}

type BookingView struct {
	ID            uuid.UUID  `json:"id"`
	CaravanID     uuid.UUID  `json:"caravanId"`
	CaravanSlug   string     `json:"caravanSlug"`
	CaravanName   string     `json:"caravanName"`
	CheckIn       civil.Date `json:"checkIn"`
	CheckOut      civil.Date `json:"checkOut"`
	BookingType   string     `json:"bookingType"`
	TotalPence    int64      `json:"totalPence"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type BookingListItem struct {
	ID           uuid.UUID  `json:"id"`
	CaravanSlug  string     `json:"caravanSlug"`
	CaravanName  string     `json:"caravanName"`
	CheckIn      civil.Date `json:"checkIn"`
	CheckOut     civil.Date `json:"checkOut"`
	BookingType  string     `json:"bookingType"`
	TotalPence   int64      `json:"totalPence"`
	CustomerName string     `json:"customerName"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type BookingFilters struct {
	CaravanSlug *string
	Status      *string
}
