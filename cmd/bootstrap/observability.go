package bootstrap

import (
	"context"
	"log/slog"

	"github.com/deanb221/caravan/internal/infra/metrics"
	"github.com/deanb221/caravan/internal/infra/tracing"
	"github.com/deanb221/caravan/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		NewRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		metrics.New,
	),
	fx.Invoke(StartTracing),
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func StartTracing(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := tracing.Init(context.Background(), cfg.Tracing)
	if err != nil {
		return err
	}
	if cfg.Tracing.Endpoint != "" {
		logger.Info("tracing enabled", "endpoint", cfg.Tracing.Endpoint, "service", cfg.Tracing.ServiceName)
	}

	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return nil
}
