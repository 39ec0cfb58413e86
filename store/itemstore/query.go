package itemstore

import (
	"context"
	"fmt"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
	"github.com/boolean-maybe/sieve/store"
)

// GetItem retrieves an item by ID
func (s *Store) GetItem(_ context.Context, id int) (*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, store.ErrNotFound)
	}
	return it, nil
}

// ItemPath returns the file an item was loaded from.
func (s *Store) ItemPath(id int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	path, ok := s.files[id]
	return path, ok
}

// GetAllItems returns all items, sorted by priority then title
func (s *Store) GetAllItems(_ context.Context) ([]*item.Item, error) {
	items := s.snapshot()
	store.SortItems(items)
	return items, nil
}

// Search applies a query to all items.
func (s *Store) Search(_ context.Context, query string, opts ...search.Option) ([]*item.Item, error) {
	return store.SearchItems(s.snapshot(), s.now(), query, opts...), nil
}

// Catalog returns the filter entries for the loaded items
func (s *Store) Catalog(_ context.Context) (search.SearchFilter, error) {
	return store.BuildCatalog(s.snapshot()), nil
}

func (s *Store) snapshot() []*item.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*item.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	return items
}
