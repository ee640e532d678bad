//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/commands"
	"github.com/deanb221/caravan/internal/usecase/queries"
	"github.com/deanb221/caravan/internal/usecase/shared"
	"github.com/deanb221/caravan/tests/common/builder"
	"github.com/deanb221/caravan/tests/common/fake"
	commandsmock "github.com/deanb221/caravan/tests/mock/commands"
	queriesmock "github.com/deanb221/caravan/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	fri07 = civil.NewDate(2025, time.March, 7)
	sat08 = civil.NewDate(2025, time.March, 8)
	mon10 = civil.NewDate(2025, time.March, 10)
	fri14 = civil.NewDate(2025, time.March, 14)
)

type recordingMetrics struct {
	submitted []booking.Type
	rejected  []string
}

func (m *recordingMetrics) QuoteIssued(booking.Type)        {}
func (m *recordingMetrics) SelectionRejected(reason string) { m.rejected = append(m.rejected, reason) }
func (m *recordingMetrics) BookingSubmitted(t booking.Type) { m.submitted = append(m.submitted, t) }

type BookingCommandsTestSuite struct {
	suite.Suite
	ctx         context.Context
	mockCtrl    *gomock.Controller
	idempotency *commandsmock.MockIdempotencyStore
	queries     *queriesmock.MockBookingQueries
	uow         *fake.UoW
	clock       *clock.MockClock
	metrics     *recordingMetrics
	useCase     commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.idempotency = commandsmock.NewMockIdempotencyStore(s.mockCtrl)
	s.queries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.uow = fake.NewUoW()
	s.clock = clock.NewMockClock(time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC))
	s.metrics = &recordingMetrics{}

	policy := booking.DefaultPolicy()
	engine := booking.NewEngine(s.clock, policy, booking.NewFixedPackageCalculator(policy, true, nil))
	s.useCase = commands.NewBookingUseCase(s.uow, s.idempotency, booking.NewFactory(engine, s.clock), s.queries, s.metrics, s.clock, nil)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func weekendRequest() commands.SubmitBookingRequest {
	return commands.SubmitBookingRequest{
		CaravanSlug:   "the-swift",
		CheckIn:       fri07,
		CheckOut:      mon10,
		CustomerName:  "Sam Taylor",
		CustomerEmail: "sam@example.com",
		CustomerPhone: "07700 900123",
	}
}

func (s *BookingCommandsTestSuite) expectViewFor(id *uuid.UUID) {
	s.queries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got uuid.UUID) (*queries.BookingView, error) {
			*id = got
			return &queries.BookingView{ID: got, Status: string(booking.StatusPending)}, nil
		})
}

// ================================================================================
// Submit
// ================================================================================

func (s *BookingCommandsTestSuite) TestSubmit_Success() {
	item := builder.NewCaravanBuilder().BuildDomain()
	s.uow.AddCaravan(item)
	key := uuid.New()

	var viewed uuid.UUID
	s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).Return(nil, nil)
	s.idempotency.EXPECT().MarkCompleted(gomock.Any(), key, gomock.Any(), gomock.Any()).Return(nil)
	s.expectViewFor(&viewed)

	result, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

	s.Require().NoError(err)
	s.False(result.IsReplayed)
	s.Equal(viewed, result.Booking.ID)

	state := s.uow.Snapshot()
	s.Require().Contains(state.Bookings, viewed)
	stored := state.Bookings[viewed]
	s.Equal(booking.TypeWeekend, stored.Type())
	s.Equal(int64(12000), stored.Total().Pence())
	s.Equal(booking.StatusPending, stored.Status())

	days := state.Days[item.ID()]
	s.Len(days, 4)
	for _, d := range civil.Range(fri07, mon10) {
		s.Equal(viewed, days[d], "day %s", d)
	}

	s.Require().Len(state.Jobs, 1)
	s.Equal(shared.EventBookingRequested, state.Jobs[0].Topic)
	var payload shared.BookingNotification
	s.Require().NoError(json.Unmarshal(state.Jobs[0].Payload, &payload))
	s.Equal("The Swift", payload.CaravanName)
	s.Equal("2025-03-07", payload.CheckIn)
	s.Equal(booking.CollectionWindow, payload.CollectionWindow)
	s.Equal(int64(12000), payload.TotalPence)

	s.Equal([]booking.Type{booking.TypeWeekend}, s.metrics.submitted)
}

func (s *BookingCommandsTestSuite) TestSubmit_Replay() {
	s.uow.AddCaravan(builder.NewCaravanBuilder().BuildDomain())
	key := uuid.New()
	bookingID := uuid.New()

	s.Run("completed key replays the stored booking", func() {
		s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).
			DoAndReturn(func(_ context.Context, k uuid.UUID, hash string) (*commands.IdempotencyRecord, error) {
				return &commands.IdempotencyRecord{Key: k, Status: commands.IdempotencyStatusCompleted, RequestHash: hash, BookingID: &bookingID}, nil
			})
		s.queries.EXPECT().GetByID(gomock.Any(), bookingID).Return(&queries.BookingView{ID: bookingID}, nil)

		result, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(bookingID, result.Booking.ID)
		s.Empty(s.uow.Snapshot().Bookings)
	})

	s.Run("in-flight key is rejected", func() {
		s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).
			DoAndReturn(func(_ context.Context, k uuid.UUID, hash string) (*commands.IdempotencyRecord, error) {
				return &commands.IdempotencyRecord{Key: k, Status: commands.IdempotencyStatusProcessing, RequestHash: hash}, nil
			})

		_, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

		s.ErrorIs(err, errs.ErrIdempotencyInProgress)
	})

	s.Run("reused key with a different body is rejected", func() {
		s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).
			Return(&commands.IdempotencyRecord{Key: key, Status: commands.IdempotencyStatusCompleted, RequestHash: "other", BookingID: &bookingID}, nil)

		_, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

		s.ErrorIs(err, errs.ErrDuplicateBooking)
	})
}

func (s *BookingCommandsTestSuite) TestSubmit_Rejections() {
	testCases := []struct {
		name          string
		booked        []civil.Date
		mutate        func(r *commands.SubmitBookingRequest)
		wantErr       error
		wantReason    string
		wantConflicts []civil.Date
	}{
		{
			name:       "interior day already booked",
			booked:     []civil.Date{sat08},
			wantErr:    booking.ErrBookingConflict,
			wantReason: "booking_conflict",
		},
		{
			name:       "check-in taken since the calendar was loaded",
			booked:     []civil.Date{fri07},
			wantErr:    booking.ErrBookingConflict,
			wantReason: "booking_conflict",
		},
		{
			name:   "taken check-in with a far-future check-out",
			booked: []civil.Date{fri07, fri07.AddDays(3), fri07.AddDays(30)},
			mutate: func(r *commands.SubmitBookingRequest) {
				r.CheckOut = civil.NewDate(9999, time.December, 31)
			},
			wantErr:       booking.ErrBookingConflict,
			wantReason:    "booking_conflict",
			wantConflicts: []civil.Date{fri07, fri07.AddDays(3)},
		},
		{
			name:       "check-in is not a Friday",
			mutate:     func(r *commands.SubmitBookingRequest) { r.CheckIn = sat08 },
			wantErr:    booking.ErrInvalidSelection,
			wantReason: "invalid_selection",
		},
		{
			name:       "stay matches no package",
			mutate:     func(r *commands.SubmitBookingRequest) { r.CheckOut = fri14.AddDays(-1) },
			wantErr:    booking.ErrInvalidSelection,
			wantReason: "invalid_selection",
		},
		{
			name:       "unknown caravan",
			mutate:     func(r *commands.SubmitBookingRequest) { r.CaravanSlug = "no-such-van" },
			wantErr:    errs.ErrCaravanNotFound,
			wantReason: "other",
		},
		{
			name:       "invalid email",
			mutate:     func(r *commands.SubmitBookingRequest) { r.CustomerEmail = "not-an-email" },
			wantErr:    errs.ErrDomainValidation,
			wantReason: "other",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.uow.AddCaravan(builder.NewCaravanBuilder().WithBookedDates(tc.booked...).BuildDomain())
			key := uuid.New()
			req := weekendRequest()
			if tc.mutate != nil {
				tc.mutate(&req)
			}

			s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).Return(nil, nil)
			s.idempotency.EXPECT().Release(gomock.Any(), key).Return(nil)

			_, err := s.useCase.Submit(s.ctx, req, key)

			s.True(errs.Is(err, tc.wantErr), "got %v", err)
			if tc.wantConflicts != nil {
				var conflict *booking.ConflictError
				s.Require().True(errors.As(err, &conflict))
				s.Equal(tc.wantConflicts, conflict.Dates)
			}
			s.Empty(s.uow.Snapshot().Bookings)
			s.Empty(s.uow.Snapshot().Jobs)
			s.Equal([]string{tc.wantReason}, s.metrics.rejected)
		})
	}
}

func (s *BookingCommandsTestSuite) TestSubmit_ConflictCarriesDates() {
	s.uow.AddCaravan(builder.NewCaravanBuilder().WithBookedDates(sat08).BuildDomain())
	key := uuid.New()
	s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).Return(nil, nil)
	s.idempotency.EXPECT().Release(gomock.Any(), key).Return(nil)

	_, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

	var conflict *booking.ConflictError
	s.Require().True(errors.As(err, &conflict))
	s.Equal([]civil.Date{sat08}, conflict.Dates)
}

func (s *BookingCommandsTestSuite) TestSubmit_IdempotencyErrors() {
	s.Run("missing key", func() {
		_, err := s.useCase.Submit(s.ctx, weekendRequest(), uuid.Nil)
		s.ErrorIs(err, errs.ErrIdempotencyKeyRequired)
	})

	s.Run("store unavailable", func() {
		key := uuid.New()
		s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

		s.True(errs.Is(err, errs.ErrIdempotencyCheckFailed))
	})

	s.Run("database failure releases the key", func() {
		s.uow.AddCaravan(builder.NewCaravanBuilder().BuildDomain())
		s.uow.FailWith = errors.New("db down")
		defer func() { s.uow.FailWith = nil }()
		key := uuid.New()
		s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).Return(nil, nil)
		s.idempotency.EXPECT().Release(gomock.Any(), key).Return(nil)

		_, err := s.useCase.Submit(s.ctx, weekendRequest(), key)

		s.Error(err)
	})
}

// ================================================================================
// Confirm / Cancel
// ================================================================================

func (s *BookingCommandsTestSuite) submit() uuid.UUID {
	key := uuid.New()
	var id uuid.UUID
	s.idempotency.EXPECT().Reserve(gomock.Any(), key, gomock.Any()).Return(nil, nil)
	s.idempotency.EXPECT().MarkCompleted(gomock.Any(), key, gomock.Any(), gomock.Any()).Return(nil)
	s.expectViewFor(&id)
	_, err := s.useCase.Submit(s.ctx, weekendRequest(), key)
	s.Require().NoError(err)
	return id
}

func (s *BookingCommandsTestSuite) TestConfirm() {
	s.uow.AddCaravan(builder.NewCaravanBuilder().BuildDomain())
	id := s.submit()
	s.queries.EXPECT().GetByID(gomock.Any(), id).Return(&queries.BookingView{ID: id, Status: "confirmed"}, nil)

	view, err := s.useCase.Confirm(s.ctx, id)

	s.Require().NoError(err)
	s.Equal("confirmed", view.Status)
	state := s.uow.Snapshot()
	s.Equal(booking.StatusConfirmed, state.Bookings[id].Status())
	s.Require().Len(state.Jobs, 2)
	s.Equal(shared.EventBookingConfirmed, state.Jobs[1].Topic)
}

func (s *BookingCommandsTestSuite) TestCancel_ReleasesDates() {
	item := builder.NewCaravanBuilder().WithBookedDates(civil.NewDate(2025, time.April, 1)).BuildDomain()
	s.uow.AddCaravan(item)
	id := s.submit()
	s.queries.EXPECT().GetByID(gomock.Any(), id).Return(&queries.BookingView{ID: id, Status: "cancelled"}, nil)

	_, err := s.useCase.Cancel(s.ctx, id)

	s.Require().NoError(err)
	state := s.uow.Snapshot()
	s.Equal(booking.StatusCancelled, state.Bookings[id].Status())
	s.Len(state.Days[item.ID()], 1, "blocked day survives cancellation")
	s.Equal(shared.EventBookingCancelled, state.Jobs[len(state.Jobs)-1].Topic)

	s.Run("cancelled booking cannot be confirmed", func() {
		_, err := s.useCase.Confirm(s.ctx, id)
		s.ErrorIs(err, booking.ErrInvalidStatusTransition)
	})
}

func (s *BookingCommandsTestSuite) TestTransition_UnknownBooking() {
	_, err := s.useCase.Confirm(s.ctx, uuid.New())
	s.ErrorIs(err, errs.ErrBookingNotFound)

	_, err = s.useCase.Cancel(s.ctx, uuid.New())
	s.ErrorIs(err, errs.ErrBookingNotFound)
}

func TestSubmitBookingRequest_JSONShape(t *testing.T) {
	b, err := json.Marshal(weekendRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"caravanSlug": "the-swift",
		"checkIn": "2025-03-07",
		"checkOut": "2025-03-10",
		"customerName": "Sam Taylor",
		"customerEmail": "sam@example.com",
		"customerPhone": "07700 900123"
	}`, string(b))
}
