package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					name TEXT UNIQUE NOT NULL,
					necessity_score INTEGER NOT NULL CHECK(necessity_score BETWEEN 1 AND 10),
					default_allocation_percent REAL NOT NULL DEFAULT 0,
					is_system INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS category_rules (
					id TEXT PRIMARY KEY,
					category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
					keywords TEXT NOT NULL DEFAULT '[]',
					merchant_patterns TEXT NOT NULL DEFAULT '[]',
					match_type TEXT NOT NULL DEFAULT 'substring'
						CHECK(match_type IN ('exact', 'substring', 'regex')),
					priority INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_category_rules_category ON category_rules(category_id)`,

				`CREATE TABLE IF NOT EXISTS merchant_overrides (
					user_id TEXT NOT NULL,
					merchant TEXT NOT NULL,
					category_id TEXT NOT NULL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, merchant)
				)`,

				`CREATE TABLE IF NOT EXISTS user_category_preferences (
					user_id TEXT NOT NULL,
					category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
					custom_priority INTEGER NOT NULL CHECK(custom_priority BETWEEN 1 AND 10),
					monthly_limit REAL,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (user_id, category_id)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Classification audit history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS classifications (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					expense_id TEXT,
					user_id TEXT NOT NULL,
					merchant TEXT,
					category_id TEXT NOT NULL,
					source TEXT NOT NULL,
					confidence REAL NOT NULL DEFAULT 0,
					amount REAL NOT NULL DEFAULT 0,
					classified_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_classifications_user ON classifications(user_id, classified_at)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
