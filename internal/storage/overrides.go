package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// GetOverride returns the pinned category for a user and normalized
// merchant name. ok is false when no pin exists.
func (s *SQLiteStorage) GetOverride(ctx context.Context, userID, normalizedMerchant string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return "", false, err
	}
	if err := validateString(normalizedMerchant, "merchant"); err != nil {
		return "", false, err
	}

	var categoryID string
	err := s.db.QueryRowContext(ctx, `
		SELECT category_id
		FROM merchant_overrides
		WHERE user_id = ? AND merchant = ?
	`, userID, normalizedMerchant).Scan(&categoryID)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get override: %w", err)
	}

	return categoryID, true, nil
}

// SetOverride pins a merchant to a category for a user. Last write wins.
func (s *SQLiteStorage) SetOverride(ctx context.Context, userID, normalizedMerchant, categoryID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateString(normalizedMerchant, "merchant"); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_overrides (user_id, merchant, category_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, merchant) DO UPDATE SET
			category_id = excluded.category_id,
			updated_at = excluded.updated_at
	`, userID, normalizedMerchant, categoryID, time.Now())

	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}

	return nil
}

// ListOverrides returns all merchant pins for a user, ordered by merchant.
func (s *SQLiteStorage) ListOverrides(ctx context.Context, userID string) ([]model.Override, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, merchant, category_id, updated_at
		FROM merchant_overrides
		WHERE user_id = ?
		ORDER BY merchant
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var overrides []model.Override
	for rows.Next() {
		var o model.Override
		err := rows.Scan(&o.UserID, &o.Merchant, &o.CategoryID, &o.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}

	return overrides, rows.Err()
}
