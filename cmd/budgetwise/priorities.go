package main

import (
	"fmt"
	"strconv"

	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func prioritiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "priorities",
		Short: "Show categories in budget priority order",
		Long: `Show categories ordered by how essential they are to your budget.
Your custom priorities take precedence over the default necessity scores.`,
		RunE: runPriorities,
	}

	cmd.AddCommand(prioritiesSetCmd())
	return cmd
}

func runPriorities(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("user")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := initEngine(ctx, store)
	if err != nil {
		return err
	}

	ordered, err := engine.PriorityOrder(ctx, userID)
	if err != nil {
		return err
	}

	cmd.Println(cli.FormatTitle("Budget priorities"))
	for i, cat := range ordered {
		cmd.Printf("%2d. %-25s (necessity %d)\n", i+1, cat.Name, cat.NecessityScore)
	}

	return nil
}

func prioritiesSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <priority>",
		Short: "Set a custom priority (1-10) for a category",
		Args:  cobra.ExactArgs(2),
		RunE:  runPrioritiesSet,
	}

	cmd.Flags().Float64("limit", 0, "optional monthly spending limit for the category")
	return cmd
}

func runPrioritiesSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("user")

	priority, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("priority must be a number between 1 and 10: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	category, err := resolveCategory(ctx, store, args[0])
	if err != nil {
		return err
	}

	engine, err := initEngine(ctx, store)
	if err != nil {
		return err
	}

	var limit *float64
	if cmd.Flags().Changed("limit") {
		value, _ := cmd.Flags().GetFloat64("limit")
		limit = &value
	}

	if err := engine.SetPriority(ctx, userID, category.ID, priority, limit); err != nil {
		return err
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("%s priority set to %d", category.Name, priority)))
	return nil
}
