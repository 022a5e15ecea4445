package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/balance/dto"
	"github.com/realdaly/books-log-sub000/internal/model"
)

func (c *cli) balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "balance",
		Aliases: []string{"stock"},
		Short:   "Show derived stock positions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <book-id>",
		Short: "Show the balance of one book",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.balances.GetBookBalance(ctx, id)
			if err != nil {
				return err
			}
			printBalanceDetail(cmd.OutOrStdout(), b)
			return nil
		}),
	})

	filters := &dto.BalanceFilters{}
	list := &cobra.Command{
		Use:   "list",
		Short: "List balances in display order",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			balances, total, err := a.balances.ListBalances(ctx, filters)
			if err != nil {
				return err
			}
			printBalances(cmd.OutOrStdout(), balances)
			printf(cmd, "%d book(s)\n", total)
			return nil
		}),
	}
	list.Flags().StringVarP(&filters.SearchQuery, "search", "s", "", "search titles")
	list.Flags().Int64SliceVar(&filters.CategoryIDs, "category", nil, "require book category id (repeatable)")
	list.Flags().IntVar(&filters.Page, "page", 0, "page number")
	list.Flags().IntVar(&filters.PageSize, "page-size", 0, "page size")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "totals",
		Short: "Sum the balances of every book",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			sum, err := a.balances.Totals(ctx)
			if err != nil {
				return err
			}
			printBalanceDetail(cmd.OutOrStdout(), sum)
			return nil
		}),
	})
	return cmd
}

func printBalances(w io.Writer, balances []model.BookBalance) {
	tw := newTable(w, "ID", "TITLE", "PRINTED", "SOLD", "PENDING", "GIFTED", "LOANED", "LOSS", "STORE", "OTHER", "INSTITUTION", "BRANCHES", "STOCK", "REVENUE")
	for _, b := range balances {
		row(tw, b.BookID, b.Title, b.TotalPrinted, b.Sold, b.PendingSale, b.Gifted, b.Loaned,
			b.LossManual+b.LossFromTx, b.StoreOutflow, b.OtherStoresTotal,
			b.RemainingInstitution, b.RemainingBranches, b.CurrentStock, b.Revenue.StringFixed(2))
	}
	tw.Flush()
}

func printBalanceDetail(w io.Writer, b *model.BookBalance) {
	tw := newTable(w, "FIELD", "VALUE")
	if b.Title != "" {
		row(tw, "title", b.Title)
	}
	row(tw, "total printed", b.TotalPrinted)
	row(tw, "sent to institution", b.SentToInstitution)
	row(tw, "sold", b.Sold)
	row(tw, "pending sale", b.PendingSale)
	row(tw, "gifted", b.Gifted)
	row(tw, "loaned", b.Loaned)
	row(tw, "loss (manual)", b.LossManual)
	row(tw, "loss (transactions)", b.LossFromTx)
	row(tw, "store outflow", b.StoreOutflow)
	row(tw, "other stores", b.OtherStoresTotal)
	row(tw, "remaining institution", b.RemainingInstitution)
	row(tw, "remaining branches", b.RemainingBranches)
	row(tw, "current stock", b.CurrentStock)
	row(tw, "revenue", b.Revenue.StringFixed(2))
	tw.Flush()
}
