package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/sieve/item"
	"github.com/boolean-maybe/sieve/store/itemstore"
)

// itemWriter is implemented by stores that accept items from outside.
type itemWriter interface {
	Put(ctx context.Context, items ...*item.Item) error
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import DIR",
		Short: "Copy markdown items from DIR into the sqlite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer res.Close()

			dst, ok := res.Store.(itemWriter)
			if !ok {
				return fmt.Errorf("store driver %q does not support import", res.Cfg.Store.Driver)
			}

			src, err := itemstore.New(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			items, err := src.GetAllItems(cmd.Context())
			if err != nil {
				return err
			}
			if err := dst.Put(cmd.Context(), items...); err != nil {
				return fmt.Errorf("import items: %w", err)
			}

			slog.Info("imported items", "count", len(items), "from", args[0])
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d items\n", len(items))
			return err
		},
	}
}
