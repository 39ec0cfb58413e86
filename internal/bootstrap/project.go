package bootstrap

import (
	"fmt"

	"github.com/boolean-maybe/sieve/config"
)

// InitProject creates the project directory layout with a default config and
// a welcome item. Returns the created files.
func InitProject() ([]string, error) {
	created, err := config.BootstrapProject()
	if err != nil {
		return created, fmt.Errorf("initialize project: %w", err)
	}
	return created, nil
}
