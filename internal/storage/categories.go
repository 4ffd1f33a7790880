package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// ListCategories returns all categories ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, necessity_score, default_allocation_percent, is_system, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		err := rows.Scan(
			&cat.ID,
			&cat.Name,
			&cat.NecessityScore,
			&cat.DefaultAllocationPercent,
			&cat.IsSystem,
			&cat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var cat model.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, necessity_score, default_allocation_percent, is_system, created_at
		FROM categories
		WHERE id = ?
	`, id).Scan(
		&cat.ID,
		&cat.Name,
		&cat.NecessityScore,
		&cat.DefaultAllocationPercent,
		&cat.IsSystem,
		&cat.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &cat, nil
}

// GetCategoryByName retrieves a category by its display name,
// case-insensitively.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var cat model.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, necessity_score, default_allocation_percent, is_system, created_at
		FROM categories
		WHERE name = ? COLLATE NOCASE
	`, name).Scan(
		&cat.ID,
		&cat.Name,
		&cat.NecessityScore,
		&cat.DefaultAllocationPercent,
		&cat.IsSystem,
		&cat.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}

	return &cat, nil
}

// CreateCategory inserts a new category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, cat *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCategory(cat); err != nil {
		return err
	}

	if cat.CreatedAt.IsZero() {
		cat.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, necessity_score, default_allocation_percent, is_system, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, cat.ID, cat.Name, cat.NecessityScore, cat.DefaultAllocationPercent, cat.IsSystem, cat.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, cat.Name)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}
