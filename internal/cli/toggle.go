package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/sieve/search"
)

func newToggleCommand() *cobra.Command {
	var strategyName string

	cmd := &cobra.Command{
		Use:   "toggle QUERY FILTER",
		Short: "Print the query after clicking a filter",
		Long: `Applies a click on FILTER, a catalog query such as in:next or area:"Work",
to QUERY and prints the resulting query. Catalog filters use the toggle
strategy of their category unless --strategy is given; filters outside the
catalog toggle normally.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := search.ParseFilterStrategy(strategyName)
			if err != nil {
				return err
			}

			res, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer res.Close()

			sf, err := res.Store.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			current, filterQuery := args[0], args[1]
			target, ok := lookupFilter(sf, filterQuery)
			if !ok {
				target = search.FilterOption{Label: filterQuery, Query: filterQuery, Strategy: search.StrategyNormal}
			}
			if strategy != search.StrategyDefault {
				target.Strategy = strategy
			}

			state := res.Parser.StateOf(current, target.Query)
			next := res.Parser.NextQuery(current, target, state)
			slog.Debug("toggled filter",
				"filter", target.Query,
				"strategy", target.EffectiveStrategy().String(),
				"active", state.Active,
				"inverted", state.Inverted)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), next)
			return err
		},
	}
	cmd.Flags().StringVar(&strategyName, "strategy", "", "override the toggle strategy: normal, exclusive, invert, replace")
	return cmd
}
