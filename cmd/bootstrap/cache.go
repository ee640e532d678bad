package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deanb221/caravan/internal/infra/idempotency"
	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/pkg/config"
	"github.com/deanb221/caravan/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewIdempotencyStore,
	),
)

// NewIdempotencyStore uses Redis when REDIS_ADDR is set and process memory
// otherwise. A configured but unreachable Redis fails startup.
func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (commands.IdempotencyStore, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, idempotency keys are kept in memory")
		return idempotency.NewMemoryStore(clk, cfg.Redis.IdempotencyTTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	logger.Info("idempotency store ready", "backend", "redis", "addr", cfg.Redis.Addr)
	return idempotency.NewRedisStore(client, cfg.Redis.IdempotencyTTL), nil
}
