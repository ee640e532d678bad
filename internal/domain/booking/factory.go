package booking

import (
	"github.com/deanb221/caravan/internal/domain/caravan"
	"github.com/deanb221/caravan/internal/pkg/civil"
	"github.com/deanb221/caravan/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	engine *Engine
	clock  clock.Clock
}

func NewFactory(engine *Engine, clk clock.Clock) *Factory {
	return &Factory{engine: engine, clock: clk}
}

func (f *Factory) Policy() Policy {
	return f.engine.Policy()
}

// Create replays the date picks against item, which must be the
// authoritative snapshot, so a stale client calendar cannot slip through.
func (f *Factory) Create(item *caravan.Caravan, checkIn, checkOut civil.Date, customer Customer) (*Booking, error) {
	sel := f.engine.NewSelection(item)
	if err := sel.ChooseCheckIn(checkIn); err != nil {
		return nil, err
	}
	if _, err := sel.ChooseCheckOut(checkOut); err != nil {
		return nil, err
	}

	result, err := sel.Result()
	if err != nil {
		return nil, err
	}
	stay, err := NewStay(result.CheckIn, result.CheckOut)
	if err != nil {
		return nil, err
	}

	now := f.clock.Now()
	return &Booking{
		id:          uuid.New(),
		caravanID:   item.ID(),
		stay:        stay,
		bookingType: result.Type,
		total:       result.Total,
		customer:    customer,
		status:      StatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}
