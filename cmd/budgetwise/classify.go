package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iddobarnoon/BudgetWise/internal/cli"
	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/iddobarnoon/BudgetWise/internal/ranking"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [merchant]",
		Short: "Classify an expense into a category",
		Long: `Classify a single expense by merchant name, or a whole CSV of
expenses with --file. CSV rows are merchant,amount[,description].`,
		RunE: runClassify,
	}

	cmd.Flags().Float64("amount", 0, "expense amount")
	cmd.Flags().String("description", "", "free-form expense description")
	cmd.Flags().String("file", "", "CSV file of expenses to classify in bulk")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	userID := viper.GetString("user")

	file, _ := cmd.Flags().GetString("file")
	if file == "" && len(args) == 0 {
		return fmt.Errorf("provide a merchant name or --file")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := initEngine(ctx, store)
	if err != nil {
		return err
	}

	if file != "" {
		return classifyFile(cmd, engine, userID, file)
	}

	merchant := strings.Join(args, " ")
	amount, _ := cmd.Flags().GetFloat64("amount")
	description, _ := cmd.Flags().GetString("description")

	result, err := engine.Classify(ctx, userID, merchant, amount, description)
	if err != nil {
		return err
	}

	printResult(cmd, merchant, result)
	return nil
}

func classifyFile(cmd *cobra.Command, engine *ranking.Engine, userID, path string) error {
	ctx := cmd.Context()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	expenses, err := readExpenses(f, userID)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		cmd.Println(cli.FormatWarning("No expenses found in " + path))
		return nil
	}

	bar := progressbar.NewOptions(len(expenses),
		progressbar.OptionSetDescription("Classifying"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	writer := csv.NewWriter(cmd.OutOrStdout())
	if err := writer.Write([]string{"merchant", "amount", "category", "confidence", "source"}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, expense := range expenses {
		result, classifyErr := engine.Classify(ctx, expense.UserID, expense.Merchant, expense.Amount, expense.Description)
		if classifyErr != nil {
			return fmt.Errorf("failed to classify %q: %w", expense.Merchant, classifyErr)
		}

		record := []string{
			expense.Merchant,
			strconv.FormatFloat(expense.Amount, 'f', 2, 64),
			result.BestCategory.Name,
			strconv.FormatFloat(result.Confidence, 'f', 2, 64),
			string(result.Source),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		_ = bar.Add(1)
	}

	writer.Flush()
	return writer.Error()
}

// readExpenses parses merchant,amount[,description] rows. A header row
// starting with "merchant" is skipped.
func readExpenses(r io.Reader, userID string) ([]model.Expense, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var expenses []model.Expense
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line++

		if len(record) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "merchant") {
			continue
		}

		expense := model.Expense{
			ID:       uuid.NewString(),
			UserID:   userID,
			Merchant: strings.TrimSpace(record[0]),
			Date:     time.Now(),
		}
		if len(record) > 1 {
			amount, parseErr := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
			if parseErr != nil {
				return nil, fmt.Errorf("invalid amount on line %d: %w", line, parseErr)
			}
			expense.Amount = amount
		}
		if len(record) > 2 {
			expense.Description = strings.TrimSpace(record[2])
		}

		expenses = append(expenses, expense)
	}

	return expenses, nil
}

func printResult(cmd *cobra.Command, merchant string, result *model.RankingResult) {
	style := cli.ConfidenceStyle(result.Confidence)

	cmd.Println(cli.FormatTitle(merchant))
	cmd.Printf("  %s %s\n", cli.BoldStyle.Render(result.BestCategory.Name),
		style.Render(fmt.Sprintf("(%.0f%% via %s)", result.Confidence*100, result.Source)))

	if len(result.Alternatives) > 0 {
		cmd.Println(cli.SubtleStyle.Render("  Alternatives:"))
		for _, alt := range result.Alternatives {
			cmd.Printf("    %s %.2f\n", alt.Category.Name, alt.Score)
		}
	}
}
