package main

import (
	"fmt"

	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your recent classifications",
		RunE:  runHistory,
	}

	cmd.Flags().Int("limit", 20, "maximum number of entries to show")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("user")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetClassificationsByUser(ctx, userID, limit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println(cli.FormatInfo("No classifications recorded yet."))
		return nil
	}

	cmd.Println(cli.FormatTitle("Classification history"))
	for _, record := range records {
		style := cli.ConfidenceStyle(record.Confidence)
		cmd.Printf("%s  %-25s %-20s %s\n",
			record.ClassifiedAt.Format("2006-01-02 15:04"),
			record.Merchant,
			record.CategoryID,
			style.Render(fmt.Sprintf("%.0f%% (%s)", record.Confidence*100, record.Source)))
	}

	return nil
}
