package main

import (
	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default categories and matching rules",
		Long: `Populate the database with the twenty default spending categories
and their keyword rules. Safe to run multiple times; an already
seeded database is left untouched.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Seed(ctx); err != nil {
		return err
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		return err
	}

	cmd.Println(cli.FormatSuccess("Catalog ready"))
	cmd.Printf("  %d categories available\n", len(categories))
	return nil
}
