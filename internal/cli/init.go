package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/sieve/config"
	"github.com/boolean-maybe/sieve/internal/bootstrap"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .sieve/ with a default config and a welcome item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := bootstrap.InitProject()
			if errors.Is(err, config.ErrAlreadyInitialized) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "already initialized:", config.GetProjectConfigFile())
				return nil
			}
			if err != nil {
				return err
			}
			for _, path := range created {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "created", path)
			}
			return nil
		},
	}
}
