package store

import (
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
)

// ItemSet is an immutable in-memory search.Collection. Predicates are
// evaluated against a fixed clock so relative date filters are stable for
// the lifetime of the set.
type ItemSet struct {
	items []*item.Item
	now   time.Time
}

var _ search.Collection[ItemSet] = ItemSet{}

// NewItemSet wraps items evaluated at now. The slice is not copied.
func NewItemSet(items []*item.Item, now time.Time) ItemSet {
	return ItemSet{items: items, now: now}
}

// Filter keeps the items matching p. A nil predicate keeps everything.
func (s ItemSet) Filter(p search.Predicate) ItemSet {
	return s.where(p, true)
}

// Exclude drops the items matching p. A nil predicate drops nothing.
func (s ItemSet) Exclude(p search.Predicate) ItemSet {
	return s.where(p, false)
}

func (s ItemSet) where(p search.Predicate, keep bool) ItemSet {
	if p == nil {
		return s
	}
	out := ItemSet{now: s.now}
	for _, it := range s.items {
		if p.Evaluate(it, s.now) == keep {
			out.items = append(out.items, it)
		}
	}
	return out
}

// Len returns the number of items in the set.
func (s ItemSet) Len() int {
	return len(s.items)
}

// Items returns the items in SortItems order.
func (s ItemSet) Items() []*item.Item {
	out := append([]*item.Item(nil), s.items...)
	SortItems(out)
	return out
}

// SearchItems applies query to items at now and returns the sorted matches.
func SearchItems(items []*item.Item, now time.Time, query string, opts ...search.Option) []*item.Item {
	return search.ApplySearch(NewItemSet(items, now), query, opts...).Items()
}
