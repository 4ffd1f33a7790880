package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/iddobarnoon/BudgetWise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func correctCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correct <merchant> <category>",
		Short: "Pin a merchant to a category",
		Long: `Record a correction: future expenses from this merchant will always
classify into the given category for your user, skipping scoring.`,
		Args: cobra.ExactArgs(2),
		RunE: runCorrect,
	}
}

func runCorrect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("user")
	merchant, categoryName := args[0], args[1]

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	category, err := resolveCategory(ctx, store, categoryName)
	if err != nil {
		return err
	}

	engine, err := initEngine(ctx, store)
	if err != nil {
		return err
	}

	if err := engine.Correct(ctx, userID, merchant, category.ID); err != nil {
		return err
	}

	cmd.Println(cli.FormatSuccess(fmt.Sprintf("%q will now always classify as %s", merchant, category.Name)))
	return nil
}

// resolveCategory looks a category up by name or ID. When the name is
// unknown it suggests the closest existing category by edit distance.
func resolveCategory(ctx context.Context, store *storage.SQLiteStorage, nameOrID string) (*model.Category, error) {
	category, err := store.GetCategoryByName(ctx, nameOrID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	category, err = store.GetCategory(ctx, nameOrID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if suggestion := closestCategory(nameOrID, categories); suggestion != "" {
		return nil, common.NewUserError(
			fmt.Sprintf("unknown category %q, did you mean %q?", nameOrID, suggestion),
			common.ErrUnknownCategory)
	}
	return nil, common.NewUserError(
		fmt.Sprintf("unknown category %q", nameOrID),
		common.ErrUnknownCategory)
}

// closestCategory returns the category name nearest to the input, or ""
// when nothing is within a reasonable edit distance.
func closestCategory(input string, categories []model.Category) string {
	const maxDistance = 5

	best := ""
	bestDistance := maxDistance + 1
	needle := strings.ToLower(input)

	for _, cat := range categories {
		distance := levenshtein.ComputeDistance(needle, strings.ToLower(cat.Name))
		if distance < bestDistance {
			best = cat.Name
			bestDistance = distance
		}
	}

	return best
}
