package main

import (
	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func overridesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overrides",
		Short: "List your merchant corrections",
		RunE:  runOverrides,
	}
}

func runOverrides(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("user")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	overrides, err := store.ListOverrides(ctx, userID)
	if err != nil {
		return err
	}

	if len(overrides) == 0 {
		cmd.Println(cli.FormatInfo("No merchant corrections recorded."))
		return nil
	}

	cmd.Println(cli.FormatTitle("Merchant corrections"))
	for _, o := range overrides {
		category, err := store.GetCategory(ctx, o.CategoryID)
		name := o.CategoryID
		if err == nil {
			name = category.Name
		}
		cmd.Printf("  %-30s → %s\n", o.Merchant, name)
	}

	return nil
}
