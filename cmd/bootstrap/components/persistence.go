package components

import (
	"github.com/deanb221/caravan/internal/infra/db"
	"github.com/deanb221/caravan/internal/infra/readstore"
	"github.com/deanb221/caravan/internal/infra/uow"
	"github.com/deanb221/caravan/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Caravan
		fx.Annotate(
			readstore.NewCaravanReadStore,
			fx.As(new(queries.CaravanReadStore)),
		),
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

// Write repositories live behind the unit of work, one set per pool.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
