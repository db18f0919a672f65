package store

import (
	"context"
	"strings"

	"github.com/erazemk/rewear/internal/model"
)

// SearchFilters narrows a search by exact, case-sensitive field equality.
// Empty fields do not filter.
type SearchFilters struct {
	Category string
	Type     string
	Size     string
}

// Search scans the approved items once and returns those matching query and
// every set filter, in insertion order. A non-empty query matches
// case-insensitively as a substring of the title, description, brand or any
// tag. Items in any other status are never returned.
func (r *Items) Search(ctx context.Context, query string, f SearchFilters) []model.Item {
	q := strings.ToLower(query)

	results := r.c.filter(ctx, func(it model.Item) bool {
		if it.Status != model.ItemStatusApproved {
			return false
		}
		if q != "" && !matchesText(it, q) {
			return false
		}
		if f.Category != "" && it.Category != f.Category {
			return false
		}
		if f.Type != "" && it.Type != f.Type {
			return false
		}
		if f.Size != "" && it.Size != f.Size {
			return false
		}
		return true
	})

	r.c.log.Debug("searched items", "query", query, "results", len(results))
	return results
}

// matchesText expects q to be lower-cased already.
func matchesText(it model.Item, q string) bool {
	if strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Description), q) {
		return true
	}
	if it.Brand != "" && strings.Contains(strings.ToLower(it.Brand), q) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
