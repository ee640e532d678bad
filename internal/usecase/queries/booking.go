package queries

import (
	"context"
	"time"

	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListFirstPage(ctx context.Context, filters BookingFilters, limit int32) ([]*BookingListItem, error)
	ListKeyset(ctx context.Context, filters BookingFilters, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// List pages newest first. One extra row is fetched to decide whether a next
// cursor exists.
func (q *bookingQueriesImpl) List(ctx context.Context, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*BookingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.ListFirstPage(ctx, filters, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, errs.ErrInvalidCursor)
		}
		rows, err = q.store.ListKeyset(ctx, filters, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
