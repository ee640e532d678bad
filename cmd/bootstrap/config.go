package bootstrap

import (
	"log/slog"

	"github.com/deanb221/caravan/internal/handler/middleware"
	"github.com/deanb221/caravan/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger also installs the logger as the slog default so packages that
// fall back to slog.Default share its handler.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		"env", cfg.App.Env,
		"strict_invariants", cfg.StrictInvariants(),
		"season_open_month", cfg.Booking.SeasonOpenMonth,
		"season_open_day", cfg.Booking.SeasonOpenDay,
		"booking_timezone", cfg.Booking.TimeZone)
	return logger
}
