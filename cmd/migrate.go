package main

import (
	"context"
	"log/slog"

	"github.com/deanb221/caravan/cmd/bootstrap"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				pool   *pgxpool.Pool
				logger *slog.Logger
			)
			app := fx.New(
				bootstrap.ConfigModule,
				bootstrap.LoggerModule,
				bootstrap.DBModule,
				fx.Populate(&pool, &logger),
				fx.NopLogger,
			)
			return runOnce(cmd.Context(), app, func() error {
				return runMigrations(pool, logger)
			})
		},
	}
}

// runOnce starts app, runs fn and always stops app again.
func runOnce(ctx context.Context, app *fx.App, fn func() error) error {
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return err
	}
	runErr := fn()
	if err := app.Stop(context.Background()); err != nil && runErr == nil {
		return err
	}
	return runErr
}
