package model

import "strings"

// CatalogSnapshot is an immutable view of the category catalog and its
// rules, taken at a single point in time. Refresh replaces the whole
// snapshot; nothing ever patches one in place.
type CatalogSnapshot struct {
	Categories map[string]Category // keyed by category ID
	Rules      []CategoryRule
}

// CategoryByName finds a category by display name, case-insensitively.
func (s *CatalogSnapshot) CategoryByName(name string) (Category, bool) {
	for _, cat := range s.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return Category{}, false
}

// Empty reports whether the snapshot has no categories.
func (s *CatalogSnapshot) Empty() bool {
	return s == nil || len(s.Categories) == 0
}
