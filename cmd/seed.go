package main

import (
	"log/slog"

	"github.com/deanb221/caravan/cmd/bootstrap"
	"github.com/deanb221/caravan/cmd/bootstrap/components"
	"github.com/deanb221/caravan/internal/infra/catalog"
	"github.com/deanb221/caravan/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load caravans and externally booked dates from a catalog file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}

			var (
				importer commands.CatalogCommands
				logger   *slog.Logger
			)
			app := fx.New(
				bootstrap.InfraModule,
				components.UseCaseModule,
				fx.Populate(&importer, &logger),
				fx.NopLogger,
			)
			return runOnce(cmd.Context(), app, func() error {
				result, err := importer.Import(cmd.Context(), entries)
				if err != nil {
					return err
				}
				logger.Info("catalog imported",
					"file", file, "caravans", result.Caravans, "blocked_dates", result.BlockedDates)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "config/caravans.yaml", "catalog file to import")
	return cmd
}
