package bootstrap

import (
	"context"
	"fmt"

	"github.com/boolean-maybe/sieve/config"
	"github.com/boolean-maybe/sieve/store"
	"github.com/boolean-maybe/sieve/store/itemstore"
	"github.com/boolean-maybe/sieve/store/sqlstore"
)

// OpenStore opens the store selected by store.driver.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverFile, "":
		s, err := itemstore.New(ctx, cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("initialize file store: %w", err)
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlstore.Open(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		return store.NewInMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// StartWatcher starts reloading a file store when its directory changes.
// Other stores have nothing to watch and return a nil watcher.
func StartWatcher(ctx context.Context, s store.Store) (*itemstore.Watcher, error) {
	fs, ok := s.(*itemstore.Store)
	if !ok {
		return nil, nil
	}
	w, err := itemstore.NewWatcher(fs, itemstore.DefaultDebounce)
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	return w, nil
}
