package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/config"
	"github.com/iddobarnoon/BudgetWise/internal/ranking"
	"github.com/iddobarnoon/BudgetWise/internal/rules"
	"github.com/iddobarnoon/BudgetWise/internal/semantic"
	"github.com/iddobarnoon/BudgetWise/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/budgetwise/budgetwise.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine builds the ranking engine on top of the store. The semantic
// strategy is only attached when an embeddings API key is configured.
func initEngine(ctx context.Context, store *storage.SQLiteStorage) (*ranking.Engine, error) {
	catalog := rules.NewCatalog(store)

	strategies := []ranking.Strategy{
		rules.NewStrategy(viper.GetFloat64("scoring.description_weight")),
	}

	if apiKey := viper.GetString("openai.api_key"); apiKey != "" {
		embedder, err := semantic.NewOpenAIEmbedder(semantic.Config{
			APIKey:            apiKey,
			Model:             viper.GetString("openai.model"),
			BaseURL:           viper.GetString("openai.base_url"),
			Dimensions:        viper.GetInt("openai.dimensions"),
			RequestsPerMinute: viper.GetInt("openai.requests_per_minute"),
			Timeout:           viper.GetDuration("openai.timeout"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		strategies = append(strategies, semantic.NewStrategy(embedder, viper.GetInt("scoring.workers")))
	} else {
		slog.Debug("No embeddings API key configured, semantic scoring disabled")
	}

	engine := ranking.New(catalog, store, strategies,
		ranking.WithPreferences(store),
		ranking.WithAudit(store),
	)

	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := engine.Refresh(refreshCtx); err != nil {
		return nil, fmt.Errorf("failed to load category catalog: %w", err)
	}

	return engine, nil
}
