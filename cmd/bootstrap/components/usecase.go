package components

import (
	"github.com/deanb221/caravan/internal/domain/booking"
	"github.com/deanb221/caravan/internal/infra/metrics"
	"github.com/deanb221/caravan/internal/pkg/config"
	"github.com/deanb221/caravan/internal/usecase/commands"
	"github.com/deanb221/caravan/internal/usecase/queries"
	"github.com/deanb221/caravan/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(m *metrics.Metrics) shared.Metrics { return m },
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewCatalogUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewCaravanQueries,
		func(store queries.CaravanReadStore, engine *booking.Engine, m shared.Metrics, cfg config.Config) queries.AvailabilityQueries {
			return queries.NewAvailabilityQueries(store, engine, m, cfg.Booking.CalendarMaxDays)
		},
	),
)
