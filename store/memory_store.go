package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
)

// InMemoryStore is an in-memory item repository.
// Useful for testing and as a reference implementation.
type InMemoryStore struct {
	Listeners

	mu    sync.RWMutex
	items map[int]*item.Item
	now   func() time.Time
}

// MemoryOption configures an InMemoryStore.
type MemoryOption func(*InMemoryStore)

// WithClock sets the clock used to evaluate relative date filters.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewInMemoryStore creates a new in-memory item store
func NewInMemoryStore(opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		items: make(map[int]*item.Item),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put adds or replaces items and notifies listeners once.
func (s *InMemoryStore) Put(items ...*item.Item) error {
	if err := checkIDs(items); err != nil {
		return err
	}

	s.mu.Lock()
	now := s.now()
	for _, it := range items {
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		it.UpdatedAt = now
		s.items[it.ID] = it
	}
	s.mu.Unlock()
	s.Notify()
	return nil
}

// Delete removes an item from the store
func (s *InMemoryStore) Delete(id int) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	s.Notify()
}

// GetItem retrieves an item by ID
func (s *InMemoryStore) GetItem(_ context.Context, id int) (*item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return it, nil
}

// GetAllItems returns all items, sorted by priority then title
func (s *InMemoryStore) GetAllItems(_ context.Context) ([]*item.Item, error) {
	items := s.snapshot()
	SortItems(items)
	return items, nil
}

// Search applies query to all items
func (s *InMemoryStore) Search(_ context.Context, query string, opts ...search.Option) ([]*item.Item, error) {
	return SearchItems(s.snapshot(), s.now(), query, opts...), nil
}

// Catalog returns the filter entries for the stored items
func (s *InMemoryStore) Catalog(_ context.Context) (search.SearchFilter, error) {
	return BuildCatalog(s.snapshot()), nil
}

// Reload is a no-op; the memory store has no backing data.
func (s *InMemoryStore) Reload(_ context.Context) error {
	return nil
}

// Close is a no-op
func (s *InMemoryStore) Close() error {
	return nil
}

func (s *InMemoryStore) snapshot() []*item.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*item.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	return items
}

// checkIDs rejects nil items and non-positive ids.
func checkIDs(items []*item.Item) error {
	for _, it := range items {
		if it == nil {
			return fmt.Errorf("nil item")
		}
		if it.ID <= 0 {
			return fmt.Errorf("item %q: id must be positive, got %d", it.Title, it.ID)
		}
	}
	return nil
}

// ensure InMemoryStore implements Store
var _ Store = (*InMemoryStore)(nil)
