package itemstore

// Store is a file-based store.Store implementation that reads items from
// markdown files.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/store"
)

// Store reads items from markdown files with YAML frontmatter.
// Each item is a separate .md file in the configured directory, named
// "<id>[-slug].md". The filename is authoritative for the id.
type Store struct {
	store.Listeners

	mu      sync.RWMutex
	dir     string // directory containing item files
	items   map[int]*item.Item
	files   map[int]string // item id -> file path
	now     func() time.Time
	loc     *time.Location // location for due dates without a zone
	workers int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to evaluate relative date filters.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the location for due dates written without a zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithWorkers bounds the number of files parsed concurrently.
func WithWorkers(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New creates a Store and loads every item file in dir.
// The directory is created if it does not exist.
func New(ctx context.Context, dir string, opts ...Option) (*Store, error) {
	slog.Debug("creating new item store", "dir", dir)
	s := &Store{
		dir:     dir,
		items:   make(map[int]*item.Item),
		files:   make(map[int]string),
		now:     time.Now,
		loc:     time.Local,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}

	//nolint:gosec // G301: 0755 is appropriate for the item directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("failed to create item directory", "dir", dir, "error", err)
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	items, files, err := s.load(ctx)
	if err != nil {
		slog.Error("failed to load items during store initialization", "dir", dir, "error", err)
		return nil, fmt.Errorf("loading items: %w", err)
	}
	s.items, s.files = items, files

	slog.Info("item store initialized", "dir", dir, "num_items", len(s.items))
	return s, nil
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Reload reloads all items from disk and notifies listeners.
func (s *Store) Reload(ctx context.Context) error {
	slog.Info("reloading items from disk", "dir", s.dir)
	start := time.Now()

	items, files, err := s.load(ctx)
	if err != nil {
		slog.Error("error reloading items from disk", "error", err)
		return err
	}

	s.mu.Lock()
	s.items, s.files = items, files
	s.mu.Unlock()

	slog.Info("items reloaded successfully", "num_items", len(items), "duration", time.Since(start).Round(time.Millisecond))
	s.Notify()
	return nil
}

// Close is a no-op; a Watcher must be stopped separately.
func (s *Store) Close() error {
	return nil
}

// ensure Store implements store.Store
var _ store.Store = (*Store)(nil)
