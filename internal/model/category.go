// Package model defines the core data structures for the BudgetWise engine.
package model

import "time"

// Category represents a spending category from the external catalog.
// Catalog entries are immutable to the engine; they are loaded at
// initialization or refresh and never mutated in place.
type Category struct {
	CreatedAt                time.Time
	ID                       string
	Name                     string
	NecessityScore           int // 1-10, 10 = most essential
	DefaultAllocationPercent float64
	IsSystem                 bool
}

// UserCategoryPreference holds a user's custom ranking for a category.
type UserCategoryPreference struct {
	UpdatedAt      time.Time
	UserID         string
	CategoryID     string
	CustomPriority int // 1-10
	MonthlyLimit   *float64
}
