//go:build unit

package fake

import (
	"context"
	"sync"
	"time"

	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/infra"
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/usecase/shared"

	"github.com/google/uuid"
)

// UoW is an in-memory shared.UnitOfWork. Each Within call works on a copy of
// the state that replaces the original only when fn succeeds.
type UoW struct {
	mu    sync.Mutex
	state *State

	// FailWith, when set, is returned by Within before fn runs.
	FailWith error
}

type State struct {
	Caravans map[caravan.Slug]*caravan.Caravan
	// Days maps caravan id to day to holding booking id (uuid.Nil for blocked days).
	Days     map[uuid.UUID]map[civil.Date]uuid.UUID
	Bookings map[uuid.UUID]*booking.Booking
	Jobs     []shared.NotificationJob
}

func NewUoW() *UoW {
	return &UoW{state: newState()}
}

func newState() *State {
	return &State{
		Caravans: map[caravan.Slug]*caravan.Caravan{},
		Days:     map[uuid.UUID]map[civil.Date]uuid.UUID{},
		Bookings: map[uuid.UUID]*booking.Booking{},
	}
}

func (s *State) clone() *State {
	out := newState()
	for k, v := range s.Caravans {
		out.Caravans[k] = v
	}
	for id, days := range s.Days {
		cp := make(map[civil.Date]uuid.UUID, len(days))
		for d, b := range days {
			cp[d] = b
		}
		out.Days[id] = cp
	}
	for k, v := range s.Bookings {
		cp := *v
		out.Bookings[k] = &cp
	}
	out.Jobs = append(out.Jobs, s.Jobs...)
	return out
}

// AddCaravan stores c and marks its booked dates as blocked.
func (u *UoW) AddCaravan(c *caravan.Caravan) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state.Caravans[c.Slug()] = c
	days := map[civil.Date]uuid.UUID{}
	for d := range c.BookedDates() {
		days[d] = uuid.Nil
	}
	u.state.Days[c.ID()] = days
}

// Snapshot returns a copy of the committed state.
func (u *UoW) Snapshot() *State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.clone()
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.FailWith != nil {
		return u.FailWith
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	staged := u.state.clone()
	if err := fn(ctx, &tx{state: staged}); err != nil {
		return err
	}
	u.state = staged
	return nil
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

type tx struct {
	state *State
}

func (t *tx) DB() db.DBTX                                  { return nil }
func (t *tx) Caravans() shared.CaravanRepository           { return caravanRepo{t.state} }
func (t *tx) Bookings() shared.BookingRepository           { return bookingRepo{t.state} }
func (t *tx) BookedDates() shared.BookedDateRepository     { return bookedDateRepo{t.state} }
func (t *tx) Notifications() shared.NotificationRepository { return notificationRepo{t.state} }

func notFound(msg string) error {
	return infra.WrapRepoErr(nil, infra.KindNotFound, msg, nil)
}

type caravanRepo struct{ s *State }

func (r caravanRepo) LockBySlug(_ context.Context, _ db.DBTX, slug caravan.Slug) (*caravan.Caravan, error) {
	c, ok := r.s.Caravans[slug]
	if !ok {
		return nil, notFound("caravan not found")
	}
	return r.withDays(c), nil
}

func (r caravanRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*caravan.Caravan, error) {
	for _, c := range r.s.Caravans {
		if c.ID() == id {
			return r.withDays(c), nil
		}
	}
	return nil, notFound("caravan not found")
}

func (r caravanRepo) Upsert(_ context.Context, _ db.DBTX, c *caravan.Caravan) (uuid.UUID, error) {
	id := c.ID()
	if existing, ok := r.s.Caravans[c.Slug()]; ok {
		id = existing.ID()
	}
	r.s.Caravans[c.Slug()] = caravan.ReconstructCaravan(id, c.Slug(), c.Name(), c.Details(), c.Pricing(), nil, c.CreatedAt(), c.UpdatedAt())
	if _, ok := r.s.Days[id]; !ok {
		r.s.Days[id] = map[civil.Date]uuid.UUID{}
	}
	return id, nil
}

func (r caravanRepo) withDays(c *caravan.Caravan) *caravan.Caravan {
	set := civil.NewDateSet()
	for d := range r.s.Days[c.ID()] {
		set.Add(d)
	}
	return caravan.ReconstructCaravan(c.ID(), c.Slug(), c.Name(), c.Details(), c.Pricing(), set, c.CreatedAt(), c.UpdatedAt())
}

type bookingRepo struct{ s *State }

func (r bookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.s.Bookings[b.ID()] = b
	return nil
}

func (r bookingRepo) FindByIDForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.s.Bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (r bookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if _, ok := r.s.Bookings[b.ID()]; !ok {
		return notFound("booking not found")
	}
	r.s.Bookings[b.ID()] = b
	return nil
}

type bookedDateRepo struct{ s *State }

func (r bookedDateRepo) Reserve(_ context.Context, _ db.DBTX, caravanID, bookingID uuid.UUID, dates []civil.Date) error {
	days := r.s.Days[caravanID]
	if days == nil {
		days = map[civil.Date]uuid.UUID{}
		r.s.Days[caravanID] = days
	}
	for _, d := range dates {
		if _, taken := days[d]; taken {
			return infra.WrapRepoErr(nil, infra.KindDuplicateKey, "day already booked", nil)
		}
	}
	for _, d := range dates {
		days[d] = bookingID
	}
	return nil
}

func (r bookedDateRepo) Block(_ context.Context, _ db.DBTX, caravanID uuid.UUID, dates []civil.Date) (int64, error) {
	days := r.s.Days[caravanID]
	if days == nil {
		days = map[civil.Date]uuid.UUID{}
		r.s.Days[caravanID] = days
	}
	var n int64
	for _, d := range dates {
		if _, taken := days[d]; !taken {
			days[d] = uuid.Nil
			n++
		}
	}
	return n, nil
}

func (r bookedDateRepo) Release(_ context.Context, _ db.DBTX, bookingID uuid.UUID) (int64, error) {
	var n int64
	for _, days := range r.s.Days {
		for d, holder := range days {
			if holder == bookingID {
				delete(days, d)
				n++
			}
		}
	}
	return n, nil
}

type notificationRepo struct{ s *State }

func (r notificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.Jobs = append(r.s.Jobs, shared.NotificationJob{
		ID:      uuid.New(),
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   runAt,
	})
	return nil
}

func (r notificationRepo) ClaimDue(_ context.Context, _ db.DBTX, now time.Time, limit int) ([]shared.NotificationJob, error) {
	var out []shared.NotificationJob
	for _, j := range r.s.Jobs {
		if !j.RunAt.After(now) && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (r notificationRepo) MarkSent(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	for i, j := range r.s.Jobs {
		if j.ID == id {
			r.s.Jobs = append(r.s.Jobs[:i], r.s.Jobs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r notificationRepo) MarkFailed(_ context.Context, _ db.DBTX, id uuid.UUID, _ string, retryAt time.Time, dead bool) error {
	for i, j := range r.s.Jobs {
		if j.ID == id {
			if dead {
				r.s.Jobs = append(r.s.Jobs[:i], r.s.Jobs[i+1:]...)
				return nil
			}
			r.s.Jobs[i].Attempts++
			r.s.Jobs[i].RunAt = retryAt
			return nil
		}
	}
	return nil
}
