package shared

import (
	"context"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/pkg/civil"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Caravans() CaravanRepository
	Bookings() BookingRepository
	BookedDates() BookedDateRepository
	Notifications() NotificationRepository
	DB() db.DBTX
}

type CaravanRepository interface {
	// LockBySlug takes a row lock on the caravan and loads its booked dates
	// after the lock is held.
	LockBySlug(ctx context.Context, tx db.DBTX, slug caravan.Slug) (*caravan.Caravan, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*caravan.Caravan, error)
	Upsert(ctx context.Context, tx db.DBTX, c *caravan.Caravan) (uuid.UUID, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, b *booking.Booking) error
}

type BookedDateRepository interface {
	// Reserve fails with a duplicate-key repository error when any date is
	// already taken.
	Reserve(ctx context.Context, tx db.DBTX, caravanID, bookingID uuid.UUID, dates []civil.Date) error
	Block(ctx context.Context, tx db.DBTX, caravanID uuid.UUID, dates []civil.Date) (int64, error)
	Release(ctx context.Context, tx db.DBTX, bookingID uuid.UUID) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
	ClaimDue(ctx context.Context, tx db.DBTX, now time.Time, limit int) ([]NotificationJob, error)
	MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, retryAt time.Time, dead bool) error
}
