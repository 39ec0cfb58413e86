package config

import (
	"errors"
	"os"
	"testing"
)

func TestBootstrapProject(t *testing.T) {
	useTempProject(t)

	created, err := BootstrapProject()
	if err != nil {
		t.Fatalf("BootstrapProject() error = %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("BootstrapProject() created %d files, want 2: %v", len(created), created)
	}
	for _, path := range created {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("created file %q missing: %v", path, err)
		}
	}

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Store.Driver != DriverFile {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, DriverFile)
	}

	if _, err := BootstrapProject(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second BootstrapProject() error = %v, want ErrAlreadyInitialized", err)
	}
}
