package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/sieve/config"
	"github.com/boolean-maybe/sieve/internal/bootstrap"
	"github.com/boolean-maybe/sieve/search"
)

// NewRootCommand builds the sieve command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sieve",
		Short: "Field-aware search over GTD items",
		Long: `sieve searches GTD items with queries like

    in:next context:phone -area:work due:soon "tax return"

Items live in markdown files under .sieve/items, or in a SQLite database.
Put -- before a query that starts with an exclusion:

    sieve search -- -in:completed`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", config.Version, config.GitCommit, config.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .sieve/config.yaml, then the user config dir)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("store", "", "store driver: file, sqlite, memory")
	pf.String("dir", "", "item directory for the file store")
	pf.String("dsn", "", "database path for the sqlite store")
	pf.Int("soon-days", 0, "days ahead counted by is:soon")
	pf.String("forced-query", "", "query merged into every search")
	pf.String("theme", "", "color theme: dark, light, auto")

	root.AddCommand(
		newInitCommand(),
		newParseCommand(),
		newSearchCommand(),
		newFiltersCommand(),
		newToggleCommand(),
		newImportCommand(),
		newWatchCommand(),
	)
	return root
}

// Execute runs the command line in args.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadSettings loads configuration and installs logging without opening a
// store.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := bootstrap.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	bootstrap.InitLogging(cfg)
	return cfg, nil
}

// openStore loads configuration and opens the configured store. Callers must
// Close the result.
func openStore(cmd *cobra.Command) (*bootstrap.BootstrapResult, error) {
	return bootstrap.Bootstrap(cmd.Context(), cmd.Flags())
}

// joinQuery lets queries be passed unquoted as several arguments.
func joinQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// lookupFilter finds the catalog entry whose query matches filterQuery.
func lookupFilter(sf search.SearchFilter, filterQuery string) (search.FilterOption, bool) {
	want := strings.TrimSpace(filterQuery)
	for _, f := range sf.AllFilters() {
		if strings.EqualFold(f.Query, want) {
			return f, true
		}
	}
	return search.FilterOption{}, false
}
