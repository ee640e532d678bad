package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/deanb221/caravan/cmd/bootstrap"
	"github.com/deanb221/caravan/internal/infra/migrate"
	"github.com/deanb221/caravan/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the notification dispatcher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []fx.Option{
				bootstrap.Module,
				fx.Provide(
					func() *gin.Engine {
						return gin.New()
					},
				),
				fx.Invoke(startServer),
			}
			if migrateUp {
				// Invoked before startServer so the schema exists before traffic.
				opts = append([]fx.Option{fx.Invoke(runMigrations)}, opts...)
			}

			app := fx.New(opts...)

			startCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := app.Start(startCtx); err != nil {
				slog.Error("failed to start application", "error", err)
				return err
			}

			<-app.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := app.Stop(stopCtx); err != nil {
				// Shutdown errors are logged only; the process is exiting anyway.
				slog.Error("failed to stop application cleanly", "error", err)
			}

			slog.Info("application stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before serving")
	return cmd
}

// @title           Caravan Booking API
// @version         1.0
// @description     Availability, pricing and booking requests for hire caravans.

// @BasePath  /
// @schemes http https
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting server", "address", srv.Addr, "mode", gin.Mode())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return srv.Shutdown(ctx)
		},
	})
}

func runMigrations(pool *pgxpool.Pool, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	applied, err := migrate.Up(ctx, pool, logger)
	if err != nil {
		return err
	}
	logger.Info("migrations complete", "applied", len(applied))
	return nil
}
