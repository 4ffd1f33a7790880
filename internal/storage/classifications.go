package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// SaveClassification appends an audit record for a completed classification.
func (s *SQLiteStorage) SaveClassification(ctx context.Context, record *model.ClassificationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("classification record is required")
	}
	if err := validateString(record.UserID, "userID"); err != nil {
		return err
	}
	if err := validateString(record.CategoryID, "categoryID"); err != nil {
		return err
	}

	if record.ClassifiedAt.IsZero() {
		record.ClassifiedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO classifications (expense_id, user_id, merchant, category_id, source, confidence, amount, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ExpenseID, record.UserID, record.Merchant, record.CategoryID,
		string(record.Source), record.Confidence, record.Amount, record.ClassifiedAt)

	if err != nil {
		return fmt.Errorf("failed to save classification: %w", err)
	}

	return nil
}

// GetClassificationsByUser returns a user's most recent classifications.
// A limit of 0 or less returns the 100 most recent.
func (s *SQLiteStorage) GetClassificationsByUser(ctx context.Context, userID string, limit int) ([]model.ClassificationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT expense_id, user_id, merchant, category_id, source, confidence, amount, classified_at
		FROM classifications
		WHERE user_id = ?
		ORDER BY classified_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.ClassificationRecord
	for rows.Next() {
		var (
			record model.ClassificationRecord
			source string
		)
		err := rows.Scan(
			&record.ExpenseID,
			&record.UserID,
			&record.Merchant,
			&record.CategoryID,
			&source,
			&record.Confidence,
			&record.Amount,
			&record.ClassifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		record.Source = model.RankingSource(source)
		records = append(records, record)
	}

	return records, rows.Err()
}
