package queries

import (
	"context"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/errs"
	"github.com/deanb221/caravan/internal/usecase/shared"
)

// DefaultCalendarDays is six weeks, enough for one month grid.
const DefaultCalendarDays = 42

type AvailabilityQueries interface {
	Calendar(ctx context.Context, slug string, from, to civil.Date) (*CalendarView, error)
	CheckOutOptions(ctx context.Context, slug string, checkIn civil.Date) (*CheckOutOptionsView, error)
	Quote(ctx context.Context, slug string, checkIn, checkOut civil.Date) (*QuoteView, error)
}

type availabilityQueriesImpl struct {
	store   CaravanReadStore
	engine  *booking.Engine
	metrics shared.Metrics
	maxDays int
}

func NewAvailabilityQueries(store CaravanReadStore, engine *booking.Engine, metrics shared.Metrics, maxDays int) AvailabilityQueries {
	if metrics == nil {
		metrics = shared.NopMetrics{}
	}
	if maxDays <= 0 {
		maxDays = 92
	}
	return &availabilityQueriesImpl{
		store:   store,
		engine:  engine,
		metrics: metrics,
		maxDays: maxDays,
	}
}

// Calendar defaults to six weeks from today when from or to is omitted.
func (q *availabilityQueriesImpl) Calendar(ctx context.Context, slug string, from, to civil.Date) (*CalendarView, error) {
	if from.IsZero() {
		from = q.engine.Today()
	}
	if to.IsZero() {
		to = from.AddDays(DefaultCalendarDays - 1)
	}
	if to.Before(from) {
		return nil, errs.Wrapf(errs.ErrInvalidDateWindow, "%s is before %s", to, from)
	}
	if span := from.DaysUntil(to) + 1; span > q.maxDays {
		return nil, errs.Wrapf(errs.ErrCalendarTooWide, "%d days requested, at most %d", span, q.maxDays)
	}

	item, err := loadInventory(ctx, q.store, slug)
	if err != nil {
		return nil, err
	}

	dates := civil.Range(from, to)
	days := make([]CalendarDay, 0, len(dates))
	for _, d := range dates {
		days = append(days, CalendarDay{
			Date:           d,
			Booked:         item.IsBooked(d),
			CheckInAllowed: q.engine.IsValidCheckIn(item, d),
		})
	}

	return &CalendarView{
		CaravanSlug:     item.Slug().String(),
		MinBookableDate: q.engine.MinBookableDate(),
		From:            from,
		To:              to,
		Days:            days,
	}, nil
}

func (q *availabilityQueriesImpl) CheckOutOptions(ctx context.Context, slug string, checkIn civil.Date) (*CheckOutOptionsView, error) {
	item, err := loadInventory(ctx, q.store, slug)
	if err != nil {
		return nil, err
	}

	sel := q.engine.NewSelection(item)
	if err := sel.ChooseCheckIn(checkIn); err != nil {
		q.metrics.SelectionRejected(shared.RejectionReason(err))
		return nil, err
	}

	candidates := q.engine.CheckOutCandidates(item, checkIn)
	options := make([]CheckOutOption, 0, len(candidates))
	for _, d := range candidates {
		quote, err := q.engine.Quote(item, checkIn, d)
		if err != nil {
			return nil, err
		}
		options = append(options, CheckOutOption{
			Date:        d,
			BookingType: quote.Type.String(),
			TotalPence:  quote.Total.Pence(),
			Nights:      quote.Nights,
		})
	}

	return &CheckOutOptionsView{
		CaravanSlug: item.Slug().String(),
		CheckIn:     checkIn,
		Options:     options,
	}, nil
}

// Quote runs both picks through a fresh selection so the caller gets the
// same rejection a booking submission would.
func (q *availabilityQueriesImpl) Quote(ctx context.Context, slug string, checkIn, checkOut civil.Date) (*QuoteView, error) {
	item, err := loadInventory(ctx, q.store, slug)
	if err != nil {
		return nil, err
	}

	sel := q.engine.NewSelection(item)
	if err := sel.ChooseCheckIn(checkIn); err != nil {
		q.metrics.SelectionRejected(shared.RejectionReason(err))
		return nil, err
	}
	quote, err := sel.ChooseCheckOut(checkOut)
	if err != nil {
		q.metrics.SelectionRejected(shared.RejectionReason(err))
		return nil, err
	}
	q.metrics.QuoteIssued(quote.Type)

	return &QuoteView{
		CaravanSlug:      item.Slug().String(),
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		BookingType:      quote.Type.String(),
		TotalPence:       quote.Total.Pence(),
		Nights:           quote.Nights,
		CollectionWindow: booking.CollectionWindow,
		ReturnWindow:     booking.ReturnWindow,
	}, nil
}
