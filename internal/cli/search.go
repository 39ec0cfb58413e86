package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	var idsOnly bool

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "List the items matching a query",
		Long:  "Applies QUERY to the configured store and lists the matches ordered by priority, then title. An empty query lists every item.",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer res.Close()

			query := joinQuery(args)
			items, err := res.Store.Search(cmd.Context(), query, res.Options...)
			if err != nil {
				return err
			}
			slog.Debug("search finished", "query", query, "matches", len(items))

			if idsOnly {
				renderIDs(cmd.OutOrStdout(), items)
				return nil
			}
			renderItems(cmd.OutOrStdout(), items, time.Now())
			return nil
		},
	}
	cmd.Flags().BoolVar(&idsOnly, "ids", false, "print only the matching ids, comma separated")
	return cmd
}
