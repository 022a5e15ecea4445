package main

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
)

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write settings stored in the database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			v, err := a.settings.Get(ctx, args[0])
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", v)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			return a.settings.Set(ctx, args[0], args[1])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every setting",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			all, err := a.settings.All(ctx)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			tw := newTable(cmd.OutOrStdout(), "KEY", "VALUE")
			for _, k := range keys {
				row(tw, k, all[k])
			}
			return tw.Flush()
		}),
	})
	return cmd
}
