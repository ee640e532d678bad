package bootstrap

import (
	"github.com/deanb221/caravan/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// InfraModule is everything below the use cases: config, logging, the
// database pool and the booking engine.
var InfraModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	ObservabilityModule,
	components.PersistenceModule,
	components.DomainModule,
)

var Module = fx.Options(
	InfraModule,
	CacheModule,
	components.UseCaseModule,
	components.NotifyModule,
	components.HandlerModule,
)
