package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/sieve/search"
)

func newFiltersCommand() *cobra.Command {
	var (
		popular  bool
		category string
		showNext bool
	)

	cmd := &cobra.Command{
		Use:   "filters [QUERY...]",
		Short: "Show the filter catalog and its state for a query",
		Long: `Lists the filter catalog grouped by category. Filters that QUERY already
applies are marked ● (included) or ⊘ (excluded). With --next, each filter also
shows the query that clicking it would produce.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer res.Close()

			sf, err := res.Store.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			sf.Parser = res.Parser
			query := joinQuery(args)

			var grouped map[search.FilterCategory][]search.FilterOption
			switch {
			case popular:
				grouped = make(map[search.FilterCategory][]search.FilterOption)
				for _, f := range res.Parser.Decorate(query, sf.PopularFilters()) {
					grouped[f.Category] = append(grouped[f.Category], f)
				}
			default:
				grouped = sf.FiltersWithState(query)
			}

			if category != "" {
				c, ok := search.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown filter category %q", category)
				}
				grouped = map[search.FilterCategory][]search.FilterOption{c: grouped[c]}
			}

			renderFilters(cmd.OutOrStdout(), grouped, showNext)
			return nil
		},
	}
	cmd.Flags().BoolVar(&popular, "popular", false, "show only the popular shortlist")
	cmd.Flags().StringVar(&category, "category", "", "show one category (status, priority, due, energy, relationship, area, context, project)")
	cmd.Flags().BoolVar(&showNext, "next", false, "show the query each filter would produce")
	return cmd
}
