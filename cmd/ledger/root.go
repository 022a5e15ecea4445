package main

import (
	"context"

	"github.com/spf13/cobra"
)

type runFunc func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error

type cli struct {
	opts options
}

// with opens the store for the duration of a single command.
func (c *cli) with(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, &c.opts)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, a, cmd, args)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "ledger",
		Short: "Inventory ledger for printed books",
		Long: `ledger records every movement of printed copies (sales, gifts, loans,
losses, store transfers) and derives each book's remaining stock from them.

The database path comes from SQLITE_PATH, the YAML file named by
LEDGER_CONFIG, or --db.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.opts.dbPath, "db", "", "path to the SQLite database")
	root.PersistentFlags().BoolVarP(&c.opts.quiet, "quiet", "q", false, "discard log output")

	root.AddCommand(
		c.migrateCmd(),
		c.bookCmd(),
		c.partyCmd(),
		c.txCmd(),
		c.otherCmd(),
		c.categoryCmd(),
		c.balanceCmd(),
		c.importCmd(),
		c.configCmd(),
	)
	return root
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			// opening the store already migrated it
			v, err := currentVersion(ctx, a)
			if err != nil {
				return err
			}
			printf(cmd, "schema version %d at %s\n", v, a.cfg.SQLite.Path)
			return nil
		}),
	}
}
