package components

import (
	"github.com/deanb221/caravan/internal/handler"
	"github.com/deanb221/caravan/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCaravanHandler,
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
	),
	fx.Invoke(handler.NewRouter),
)
