package booking

import (
	"fmt"
	"strings"

	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
)

var (
	// ErrInvalidSelection: a date failed its check-in or check-out filter.
	ErrInvalidSelection = errs.New("invalid selection")
	// ErrBookingConflict: the chosen range overlaps booked dates.
	ErrBookingConflict = errs.New("booking conflict")
	// ErrUnreachableNights is a programmer error, never a user error.
	ErrUnreachableNights = errs.New("unreachable nights value")

	ErrInvalidStatusTransition = errs.New("invalid booking status transition")
	ErrCustomerNameRequired    = errs.New("customer name is required")
	ErrInvalidCustomerEmail    = errs.New("invalid customer email")
	ErrCustomerPhoneRequired   = errs.New("customer phone is required")
)

// ConflictError lists the booked dates inside a rejected range.
type ConflictError struct {
	Dates []civil.Date
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s already booked", ErrBookingConflict.Error(), strings.Join(civil.Strings(e.Dates), ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrBookingConflict
}

func invalidSelection(format string, args ...any) error {
	return errs.Wrapf(ErrInvalidSelection, format, args...)
}
