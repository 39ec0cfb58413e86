package store

import (
	"sort"
	"strings"

	"github.com/boolean-maybe/sieve/item"
)

// SortItems sorts items by priority first (urgent before low), then by title
// case-insensitively, then by ID.
func SortItems(items []*item.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}

		ti, tj := strings.ToLower(items[i].Title), strings.ToLower(items[j].Title)
		if ti != tj {
			return ti < tj
		}
		return items[i].ID < items[j].ID
	})
}
