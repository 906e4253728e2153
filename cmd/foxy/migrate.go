package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/foxy-spend/internal/cli"
	"github.com/Veraticus/foxy-spend/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every command migrates on startup; this one only reports the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slog.Info("Running database migrations", "database", appConfig.Database.Path)

			store, err := initStorage(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cmd.Println(cli.FormatSuccess(fmt.Sprintf("Esquema en la versión %d", storage.ExpectedSchemaVersion)))
			return nil
		},
	}
}
