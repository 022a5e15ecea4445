package main

import (
	"context"

	"github.com/spf13/cobra"
)

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file|-]",
		Short: "Bulk load parties and transactions from a JSON document",
		Long: `Reads {"parties": [...], "transactions": [...]} and records every row.
Books and parties are matched by name and created when missing. A bad row
is reported and skipped without stopping the run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			r, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer r.Close()

			report, err := a.importer.Run(ctx, r)
			if err != nil {
				return err
			}
			for _, f := range report.PartiesFailed {
				cmd.PrintErrf("party %q: %v\n", f.Item, f.Err)
			}
			for _, f := range report.Skipped {
				cmd.PrintErrf("row %d skipped: %v\n", f.Item, f.Err)
			}
			for _, f := range report.Failed {
				cmd.PrintErrf("row %d failed: %v\n", f.Item, f.Err)
			}
			printf(cmd, "%s\n", report)
			return nil
		}),
	}
}
