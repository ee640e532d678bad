package request

import (
	"github.com/deanb221/caravan/internal/pkg/civil"
)

type QuoteRequest struct {
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
}

func (r QuoteRequest) Dates() (checkIn, checkOut civil.Date, err error) {
	if checkIn, err = civil.ParseDate(r.CheckIn); err != nil {
		return
	}
	checkOut, err = civil.ParseDate(r.CheckOut)
	return
}

// CalendarQuery binds ?from=&to=. Both are optional.
type CalendarQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

func (q CalendarQuery) Dates() (from, to civil.Date, err error) {
	if q.From != "" {
		if from, err = civil.ParseDate(q.From); err != nil {
			return
		}
	}
	if q.To != "" {
		to, err = civil.ParseDate(q.To)
	}
	return
}

type CheckOutQuery struct {
	CheckIn string `form:"checkIn" binding:"required"`
}

type BookingListQuery struct {
	Caravan string `form:"caravan"`
	Status  string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	After   string `form:"after"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
