package bootstrap

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/sieve/config"
	"github.com/boolean-maybe/sieve/search"
	"github.com/boolean-maybe/sieve/store"
)

// BootstrapResult contains all initialized application components.
type BootstrapResult struct {
	Cfg      *config.Config
	LogLevel slog.Level
	Store    store.Store
	Parser   *search.Parser
	Options  []search.Option
}

// Close releases the store.
func (r *BootstrapResult) Close() {
	if err := r.Store.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}

// Bootstrap orchestrates the application initialization sequence: it loads
// configuration, installs logging and opens the configured store.
func Bootstrap(ctx context.Context, flags *pflag.FlagSet) (*BootstrapResult, error) {
	// Phase 1: Configuration and logging
	cfg, err := LoadConfig(flags)
	if err != nil {
		return nil, err
	}
	logLevel := InitLogging(cfg)

	// Phase 2: Store initialization
	s, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("store ready", "driver", cfg.Store.Driver)

	// Phase 3: Search setup
	opts := cfg.SearchOptions()
	return &BootstrapResult{
		Cfg:      cfg,
		LogLevel: logLevel,
		Store:    s,
		Parser:   search.NewParser(opts...),
		Options:  opts,
	}, nil
}
