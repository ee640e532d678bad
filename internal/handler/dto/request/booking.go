package request

import (
	"strings"

	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/commands"
)

type SubmitBookingRequest struct {
	CaravanSlug   string `json:"caravanSlug" binding:"required,max=100"`
	CheckIn       string `json:"checkIn" binding:"required"`
	CheckOut      string `json:"checkOut" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required,max=200"`
	CustomerEmail string `json:"customerEmail" binding:"required,email,max=254"`
	CustomerPhone string `json:"customerPhone" binding:"required,max=40"`
}

func (r SubmitBookingRequest) ToCommand() (commands.SubmitBookingRequest, error) {
	checkIn, err := civil.ParseDate(r.CheckIn)
	if err != nil {
		return commands.SubmitBookingRequest{}, err
	}
	checkOut, err := civil.ParseDate(r.CheckOut)
	if err != nil {
		return commands.SubmitBookingRequest{}, err
	}
	return commands.SubmitBookingRequest{
		CaravanSlug:   strings.TrimSpace(r.CaravanSlug),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		CustomerPhone: strings.TrimSpace(r.CustomerPhone),
	}, nil
}
