package components

import (
	"log/slog"

	"github.com/deanb221/caravan/internal/infra/metrics"
	"github.com/deanb221/caravan/internal/infra/notify"
	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/pkg/config"
	"github.com/deanb221/caravan/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		func(cfg config.Config, logger *slog.Logger) notify.Publisher {
			return notify.NewPublisher(cfg.Kafka, logger)
		},
		func(cfg config.Config) *notify.Renderer {
			return notify.NewRenderer(cfg.Notify.StaffEmail)
		},
		NewDispatcher,
	),
	fx.Invoke(registerDispatcher),
)

func NewDispatcher(
	uow shared.UnitOfWork,
	publisher notify.Publisher,
	renderer *notify.Renderer,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg config.Config,
	logger *slog.Logger,
) *notify.Dispatcher {
	return notify.NewDispatcher(uow, publisher, renderer, clk, m, cfg.Notify, logger)
}

func registerDispatcher(lc fx.Lifecycle, d *notify.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: d.Start,
		OnStop:  d.Stop,
	})
}
