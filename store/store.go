package store

import (
	"context"
	"errors"
	"sync"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/search"
)

// ErrNotFound is returned when an item id is not in the store.
var ErrNotFound = errors.New("item not found")

// Store is the interface for item storage engines.
// Implementations must be thread-safe and notify listeners on changes.
type Store interface {
	// AddListener registers a callback for change notifications.
	// returns a listener ID that can be used to remove the listener.
	AddListener(listener ChangeListener) int

	// RemoveListener removes a previously registered listener by ID
	RemoveListener(id int)

	// GetItem retrieves an item by ID. Returns ErrNotFound if absent.
	GetItem(ctx context.Context, id int) (*item.Item, error)

	// GetAllItems returns all items sorted by SortItems order.
	GetAllItems(ctx context.Context) ([]*item.Item, error)

	// Search applies a query to all items and returns the matches in
	// SortItems order.
	Search(ctx context.Context, query string, opts ...search.Option) ([]*item.Item, error)

	// Catalog returns the dynamic filter entries (areas, contexts, tags and
	// open projects) known to the store.
	Catalog(ctx context.Context) (search.SearchFilter, error)

	// Reload reloads all data from the backing store
	Reload(ctx context.Context) error

	// Close releases resources held by the store
	Close() error
}

// ChangeListener is called when the store's data changes
type ChangeListener func()

// Listeners is the listener registry shared by store implementations.
// Embedding it provides AddListener and RemoveListener. The zero value is
// ready to use and safe for concurrent use.
type Listeners struct {
	mu             sync.Mutex
	listeners      map[int]ChangeListener
	nextListenerID int
}

// AddListener registers listener and returns its ID. IDs start at 1 so zero
// can be used as a sentinel by callers.
func (ls *Listeners) AddListener(listener ChangeListener) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.listeners == nil {
		ls.listeners = make(map[int]ChangeListener)
	}
	ls.nextListenerID++
	ls.listeners[ls.nextListenerID] = listener
	return ls.nextListenerID
}

// RemoveListener removes a previously registered listener by ID
func (ls *Listeners) RemoveListener(id int) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	delete(ls.listeners, id)
}

// Notify calls all registered listeners outside the lock.
func (ls *Listeners) Notify() {
	ls.mu.Lock()
	listeners := make([]ChangeListener, 0, len(ls.listeners))
	for _, l := range ls.listeners {
		listeners = append(listeners, l)
	}
	ls.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}
