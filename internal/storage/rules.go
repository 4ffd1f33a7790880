package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// ListRules returns all category rules, highest priority first.
// Keywords and merchant patterns are stored as JSON arrays.
func (s *SQLiteStorage) ListRules(ctx context.Context) ([]model.CategoryRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, keywords, merchant_patterns, match_type, priority
		FROM category_rules
		ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.CategoryRule
	for rows.Next() {
		var (
			rule        model.CategoryRule
			keywordsRaw string
			patternsRaw string
			matchType   string
		)
		err := rows.Scan(
			&rule.ID,
			&rule.CategoryID,
			&keywordsRaw,
			&patternsRaw,
			&matchType,
			&rule.Priority,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}

		if err := json.Unmarshal([]byte(keywordsRaw), &rule.Keywords); err != nil {
			return nil, fmt.Errorf("failed to decode keywords for rule %s: %w", rule.ID, err)
		}
		if err := json.Unmarshal([]byte(patternsRaw), &rule.MerchantPatterns); err != nil {
			return nil, fmt.Errorf("failed to decode merchant patterns for rule %s: %w", rule.ID, err)
		}
		rule.MatchType = model.MatchType(matchType)

		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// CreateRule inserts a new category rule.
func (s *SQLiteStorage) CreateRule(ctx context.Context, rule *model.CategoryRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	keywords, err := json.Marshal(rule.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}
	patterns, err := json.Marshal(rule.MerchantPatterns)
	if err != nil {
		return fmt.Errorf("failed to encode merchant patterns: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO category_rules (id, category_id, keywords, merchant_patterns, match_type, priority)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rule.ID, rule.CategoryID, string(keywords), string(patterns), string(rule.MatchType), rule.Priority)

	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	return nil
}
