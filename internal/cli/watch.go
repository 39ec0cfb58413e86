package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/sieve/internal/bootstrap"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [QUERY...]",
		Short: "Re-run a search whenever item files change",
		Long:  "Lists the matches for QUERY, then lists them again after every change to the item directory. Requires the file store. Stops on interrupt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer res.Close()

			ctx := cmd.Context()
			w, err := bootstrap.StartWatcher(ctx, res.Store)
			if err != nil {
				return err
			}
			if w == nil {
				return fmt.Errorf("store driver %q cannot be watched", res.Cfg.Store.Driver)
			}
			defer w.Stop()

			changed := make(chan struct{}, 1)
			id := res.Store.AddListener(func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})
			defer res.Store.RemoveListener(id)

			query := joinQuery(args)
			out := cmd.OutOrStdout()
			for {
				items, err := res.Store.Search(ctx, query, res.Options...)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "-- %s: %d matches\n", time.Now().Format(time.TimeOnly), len(items))
				renderItems(out, items, time.Now())

				select {
				case <-ctx.Done():
					return nil
				case <-changed:
				}
			}
		},
	}
}
