package main

import (
	"fmt"

	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List spending categories",
		RunE:  runCategories,
	}
}

func runCategories(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		cmd.Println(cli.FormatWarning("No categories found. Run 'budgetwise seed' to load the defaults."))
		return nil
	}

	cmd.Println(cli.FormatTitle("Categories"))
	header := fmt.Sprintf("%-25s %-10s %-12s", "Name", "Necessity", "Allocation")
	cmd.Println(cli.TableHeaderStyle.Render(header))
	for _, cat := range categories {
		cmd.Printf("%-25s %-10d %-12s\n",
			cat.Name, cat.NecessityScore,
			fmt.Sprintf("%.1f%%", cat.DefaultAllocationPercent))
	}

	return nil
}
