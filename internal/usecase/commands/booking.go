package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/queries"
	"github.com/deanb221/caravan/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("caravan/usecase/commands")

type SubmitBookingRequest struct {
	CaravanSlug   string     `json:"caravanSlug"`
	CheckIn       civil.Date `json:"checkIn"`
	CheckOut      civil.Date `json:"checkOut"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
}

type SubmitBookingResult struct {
	Booking    *queries.BookingView
	IsReplayed bool
}

type BookingCommands interface {
	Submit(ctx context.Context, req SubmitBookingRequest, idempotencyKey uuid.UUID) (*SubmitBookingResult, error)
	Confirm(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	idempotency    IdempotencyStore
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	metrics        shared.Metrics
	clock          clock.Clock
	logger         *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	idempotency IdempotencyStore,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingUseCaseImpl{
		uow:            uow,
		idempotency:    idempotency,
		factory:        factory,
		bookingQueries: bookingQueries,
		metrics:        metrics,
		clock:          clk,
		logger:         logger,
	}
}

func (u *bookingUseCaseImpl) Submit(
	ctx context.Context,
	req SubmitBookingRequest,
	idempotencyKey uuid.UUID,
) (*SubmitBookingResult, error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.Submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("caravan.slug", req.CaravanSlug),
		attribute.String("booking.check_in", req.CheckIn.String()),
		attribute.String("booking.check_out", req.CheckOut.String()),
	)

	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	requestHash := calculateRequestHash(req)

	existing, err := u.idempotency.Reserve(ctx, idempotencyKey, requestHash)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if existing != nil {
		view, err := u.replay(ctx, existing, requestHash)
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.Bool("idempotency.replayed", true))
		return &SubmitBookingResult{Booking: view, IsReplayed: true}, nil
	}

	created, err := u.createBooking(ctx, req)
	if err != nil {
		if releaseErr := u.idempotency.Release(ctx, idempotencyKey); releaseErr != nil {
			u.logger.Warn("failed to release idempotency key", "key", idempotencyKey, "error", releaseErr)
		}
		u.metrics.SelectionRejected(shared.RejectionReason(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	u.metrics.BookingSubmitted(created.Type())

	// The booking is committed; a lost completion only means a retry sees
	// "in progress" until the key expires.
	if err := u.idempotency.MarkCompleted(ctx, idempotencyKey, requestHash, created.ID()); err != nil {
		u.logger.Warn("failed to complete idempotency key", "key", idempotencyKey, "booking_id", created.ID(), "error", err)
	}

	view, err := u.bookingQueries.GetByID(ctx, created.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	span.SetAttributes(attribute.String("booking.id", created.ID().String()))
	return &SubmitBookingResult{Booking: view, IsReplayed: false}, nil
}

func (u *bookingUseCaseImpl) replay(ctx context.Context, existing *IdempotencyRecord, requestHash string) (*queries.BookingView, error) {
	if existing.RequestHash != requestHash {
		return nil, errs.ErrDuplicateBooking
	}

	switch existing.Status {
	case IdempotencyStatusCompleted:
		if existing.BookingID == nil {
			return nil, errs.New("completed request missing booking ID")
		}
		return u.bookingQueries.GetByID(ctx, *existing.BookingID)
	case IdempotencyStatusProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (u *bookingUseCaseImpl) createBooking(ctx context.Context, req SubmitBookingRequest) (*booking.Booking, error) {
	customer, err := booking.NewCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	slug, err := caravan.NewSlug(req.CaravanSlug)
	if err != nil {
		return nil, errs.ErrCaravanNotFound
	}

	var created *booking.Booking
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := tx.Caravans().LockBySlug(ctx, tx.DB(), slug)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrCaravanNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		b, err := u.factory.Create(item, req.CheckIn, req.CheckOut, customer)
		if err != nil {
			return staleCalendarConflict(err, item, req, u.factory.Policy().MaxNights())
		}

		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.BookedDates().Reserve(ctx, tx.DB(), item.ID(), b.ID(), b.Stay().OccupiedDates()); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Wrap(booking.ErrBookingConflict, "dates were taken by a concurrent booking")
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := u.enqueueNotification(ctx, tx, shared.EventBookingRequested, b, item); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("booking submitted",
		"booking_id", created.ID(),
		"caravan", slug.String(),
		"check_in", created.Stay().CheckIn().String(),
		"check_out", created.Stay().CheckOut().String(),
		"type", created.Type().String())
	return created, nil
}

func (u *bookingUseCaseImpl) Confirm(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transition(ctx, id, shared.EventBookingConfirmed, func(b *booking.Booking) error {
		return b.Confirm(u.clock.Now())
	}, false)
}

// Cancel frees the booking's dates in the same transaction as the status change.
func (u *bookingUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transition(ctx, id, shared.EventBookingCancelled, func(b *booking.Booking) error {
		return b.Cancel(u.clock.Now())
	}, true)
}

func (u *bookingUseCaseImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	event string,
	apply func(b *booking.Booking) error,
	releaseDates bool,
) (*queries.BookingView, error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.Transition")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.id", id.String()),
		attribute.String("booking.event", event),
	)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := apply(b); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if releaseDates {
			released, err := tx.BookedDates().Release(ctx, tx.DB(), b.ID())
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			u.logger.Info("booked dates released", "booking_id", b.ID(), "days", released)
		}

		item, err := tx.Caravans().FindByID(ctx, tx.DB(), b.CaravanID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return u.enqueueNotification(ctx, tx, event, b, item)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return u.bookingQueries.GetByID(ctx, id)
}

func (u *bookingUseCaseImpl) enqueueNotification(
	ctx context.Context,
	tx shared.Tx,
	event string,
	b *booking.Booking,
	item *caravan.Caravan,
) error {
	now := u.clock.Now()
	payload, err := json.Marshal(shared.NewBookingNotification(event, b, item, now))
	if err != nil {
		return errs.Wrap(err, "marshal notification payload")
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), shared.NotificationKindEmail, event, payload, now); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// staleCalendarConflict reports a check-in that is booked in the stored
// calendar as a conflict, which is what a booker who lost a race sees.
// The scan never reaches past the longest package, whatever check-out the
// client sent.
func staleCalendarConflict(err error, item *caravan.Caravan, req SubmitBookingRequest, maxNights int) error {
	if !errs.Is(err, booking.ErrInvalidSelection) || !item.IsBooked(req.CheckIn) {
		return err
	}
	end := req.CheckIn
	if req.CheckOut.After(req.CheckIn) {
		end = req.CheckOut
	}
	if limit := req.CheckIn.AddDays(maxNights); end.After(limit) {
		end = limit
	}
	return &booking.ConflictError{Dates: booking.Conflicts(item, req.CheckIn, end)}
}

func calculateRequestHash(req SubmitBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
