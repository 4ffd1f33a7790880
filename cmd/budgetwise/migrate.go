package main

import (
	"log/slog"

	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/iddobarnoon/BudgetWise/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

This command ensures your local database has all the required
tables and indexes for the application to function properly.`,
		RunE: runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	// initStorage runs migrations as part of opening the database.
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	slog.Info("Database schema up to date", "version", storage.ExpectedSchemaVersion)
	cmd.Println(cli.FormatSuccess("Migrations applied"))
	return nil
}
