package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// GetPreferences returns all category preferences for a user.
func (s *SQLiteStorage) GetPreferences(ctx context.Context, userID string) ([]model.UserCategoryPreference, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, category_id, custom_priority, monthly_limit, updated_at
		FROM user_category_preferences
		WHERE user_id = ?
		ORDER BY category_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var prefs []model.UserCategoryPreference
	for rows.Next() {
		var pref model.UserCategoryPreference
		err := rows.Scan(
			&pref.UserID,
			&pref.CategoryID,
			&pref.CustomPriority,
			&pref.MonthlyLimit,
			&pref.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}

// SetPreference upserts a user's category preference.
func (s *SQLiteStorage) SetPreference(ctx context.Context, pref model.UserCategoryPreference) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(pref.UserID, "userID"); err != nil {
		return err
	}
	if err := validateString(pref.CategoryID, "categoryID"); err != nil {
		return err
	}
	if pref.CustomPriority < 1 || pref.CustomPriority > 10 {
		return fmt.Errorf("%w: custom priority must be between 1 and 10, got %d",
			common.ErrInvalidConfig, pref.CustomPriority)
	}

	if pref.UpdatedAt.IsZero() {
		pref.UpdatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_category_preferences (user_id, category_id, custom_priority, monthly_limit, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category_id) DO UPDATE SET
			custom_priority = excluded.custom_priority,
			monthly_limit = excluded.monthly_limit,
			updated_at = excluded.updated_at
	`, pref.UserID, pref.CategoryID, pref.CustomPriority, pref.MonthlyLimit, pref.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}
