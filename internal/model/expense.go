package model

import "time"

// Expense is an expense submitted for classification.
// The engine never persists expenses; they exist only for the duration
// of a classification call or a batch run.
type Expense struct {
	Date        time.Time
	ID          string
	UserID      string
	Merchant    string
	Description string
	Amount      float64
}

// ClassificationRecord is an audit entry for a completed classification.
type ClassificationRecord struct {
	ClassifiedAt time.Time
	ExpenseID    string
	UserID       string
	Merchant     string
	CategoryID   string
	Source       RankingSource
	Confidence   float64
	Amount       float64
}
