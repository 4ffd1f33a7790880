package model

import "time"

// Override pins a normalized merchant to a category for one user.
// Overrides always win over computed rankings and never expire.
type Override struct {
	UpdatedAt  time.Time
	UserID     string
	Merchant   string // normalized form
	CategoryID string
}
