package bootstrap

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/boolean-maybe/sieve/config"
)

// LoadConfig loads the application configuration, letting flags that were
// set on the command line override file and environment values.
// Returns an error if configuration loading fails.
func LoadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
