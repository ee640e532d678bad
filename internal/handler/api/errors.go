package api

import (
	"errors"
	"net/http"

	"github.com/deanb221/caravan/internal/domain/booking"
	resdto "github.com/deanb221/caravan/internal/handler/dto/response"
	"github.com/deanb221/caravan/internal/handler/httperr"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

var errInvalidIdempotencyKey = errs.New("invalid idempotency key format")

// abortWithUseCaseError maps usecase and engine errors onto HTTP statuses.
func abortWithUseCaseError(c *gin.Context, err error) {
	var conflict *booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Selected dates are already booked",
			resdto.ConflictDetail{Conflicts: civil.Strings(conflict.Dates)})
	case errs.Is(err, booking.ErrBookingConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Selected dates are already booked", nil)
	case errs.Is(err, errs.ErrCaravanNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Caravan not found", nil)
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, booking.ErrInvalidSelection):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid date selection", gin.H{"reason": err.Error()})
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", gin.H{"reason": err.Error()})
	case errs.Is(err, booking.ErrInvalidStatusTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking cannot move to that status", nil)
	case errs.Is(err, errs.ErrDuplicateBooking):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate booking request with different parameters", nil)
	case errs.Is(err, errs.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking request is currently being processed", nil)
	case errs.Is(err, errs.ErrIdempotencyKeyRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key header is required", nil)
	case errs.Is(err, errs.ErrInvalidDateWindow),
		errs.Is(err, errs.ErrCalendarTooWide),
		errs.Is(err, errs.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", gin.H{"reason": err.Error()})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader(idempotencyKeyHeader)
	if raw == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Wrap(errInvalidIdempotencyKey, err.Error())
	}
	return key, nil
}
