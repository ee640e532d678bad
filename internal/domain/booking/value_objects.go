package booking

import (
	"net/mail"
	"strings"

	"github.com/deanb221/caravan/internal/pkg/civil"
)

type Customer struct {
	name  string
	email string
	phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Customer{}, ErrCustomerNameRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return Customer{}, ErrInvalidCustomerEmail
	}
	if phone == "" {
		return Customer{}, ErrCustomerPhoneRequired
	}
	return Customer{name: name, email: email, phone: phone}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

// Stay is a check-in/check-out pair. Collection is 15:00-16:00 on the
// check-in day and return is 10:00-12:00 on the check-out day.
type Stay struct {
	checkIn  civil.Date
	checkOut civil.Date
}

func NewStay(checkIn, checkOut civil.Date) (Stay, error) {
	if !checkIn.Before(checkOut) {
		return Stay{}, invalidSelection("check-out %s must be after check-in %s", checkOut, checkIn)
	}
	return Stay{checkIn: checkIn, checkOut: checkOut}, nil
}

func (s Stay) CheckIn() civil.Date  { return s.checkIn }
func (s Stay) CheckOut() civil.Date { return s.checkOut }

func (s Stay) Nights() int {
	return s.checkIn.DaysUntil(s.checkOut)
}

// OccupiedDates covers both the collection and the return day.
func (s Stay) OccupiedDates() []civil.Date {
	return civil.Range(s.checkIn, s.checkOut)
}

const (
	CollectionWindow = "15:00-16:00"
	ReturnWindow     = "10:00-12:00"
)
