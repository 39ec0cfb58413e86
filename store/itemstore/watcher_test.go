package itemstore

import (
	"context"
	"testing"
	"time"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/testutil"

	"go.uber.org/goleak"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	s := newTestStore(t, dir)

	reloaded := make(chan struct{}, 1)
	s.AddListener(func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	w, err := NewWatcher(s, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := testutil.CreateTestItem(dir, 1, "Fresh item", item.StatusInbox, ""); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("store was not reloaded after a file change")
	}

	if _, err := s.GetItem(context.Background(), 1); err != nil {
		t.Errorf("GetItem(1) after reload: %v", err)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestStore(t, t.TempDir())
	w, err := NewWatcher(s, 0)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// a second Start is a no-op
	if err := w.Start(ctx); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}

	cancel()
	w.Stop()
	w.Stop()
}
