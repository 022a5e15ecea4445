package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

func (c *cli) otherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "other",
		Short: "Record copies moved to stores outside the institution",
	}
	cmd.AddCommand(c.otherAddCmd(), c.otherListCmd(), c.otherUpdateCmd(), c.otherDeleteCmd())
	return cmd
}

type otherFlags struct {
	book       int64
	qty        int64
	date       string
	notes      string
	categories []int64
}

func (f *otherFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.book, "book", 0, "book id")
	cmd.Flags().Int64Var(&f.qty, "qty", 0, "quantity")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free text notes")
	cmd.Flags().Int64SliceVar(&f.categories, "category", nil, "other category id (repeatable)")
}

func (f *otherFlags) apply(cmd *cobra.Command, in *dto.CreateOtherTransactionInput) error {
	changed := cmd.Flags().Changed
	if changed("book") {
		in.BookID = f.book
	}
	if changed("qty") {
		in.Qty = f.qty
	}
	if changed("date") {
		d, err := parseDate("date", f.date)
		if err != nil {
			return err
		}
		in.TxDate = d
	}
	if changed("notes") {
		in.Notes = f.notes
	}
	if changed("category") {
		in.CategoryIDs = f.categories
	}
	return nil
}

func (c *cli) otherAddCmd() *cobra.Command {
	f := &otherFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an outside store transfer",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			in := &dto.CreateOtherTransactionInput{}
			if err := f.apply(cmd, in); err != nil {
				return err
			}
			ot, err := a.ledger.CreateOtherTransaction(ctx, in)
			if err != nil {
				return err
			}
			printf(cmd, "other transaction %d recorded: %d x book %d on %s\n", ot.ID, ot.Qty, ot.BookID, ot.TxDate)
			return nil
		}),
	}
	f.register(cmd)
	return cmd
}

func (c *cli) otherListCmd() *cobra.Command {
	filters := &dto.OtherFilters{}
	var from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outside store transfers",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			if from != "" {
				d, err := parseDate("from", from)
				if err != nil {
					return err
				}
				filters.DateFrom = &d
			}
			if to != "" {
				d, err := parseDate("to", to)
				if err != nil {
					return err
				}
				filters.DateTo = &d
			}
			others, total, err := a.ledger.ListOtherTransactions(ctx, filters)
			if err != nil {
				return err
			}
			printOthers(cmd.OutOrStdout(), others)
			printf(cmd, "%d other transaction(s)\n", total)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&filters.SearchQuery, "search", "s", "", "search book titles")
	cmd.Flags().Int64Var(&filters.BookID, "book", 0, "book id")
	cmd.Flags().Int64SliceVar(&filters.CategoryIDs, "category", nil, "require other category id (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().IntVar(&filters.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filters.PageSize, "page-size", 0, "page size")
	return cmd
}

func printOthers(w io.Writer, others []model.OtherTransaction) {
	tw := newTable(w, "ID", "DATE", "BOOK", "QTY", "CATEGORIES", "NOTES")
	for _, o := range others {
		row(tw, o.ID, o.TxDate, o.BookTitle, o.Qty, o.CategoryIDs, o.Notes)
	}
	tw.Flush()
}

func (c *cli) otherUpdateCmd() *cobra.Command {
	f := &otherFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an outside store transfer",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.ledger.GetOtherTransaction(ctx, id)
			if err != nil {
				return err
			}
			in := &dto.UpdateOtherTransactionInput{
				ID: cur.ID,
				CreateOtherTransactionInput: dto.CreateOtherTransactionInput{
					BookID:      cur.BookID,
					Qty:         cur.Qty,
					TxDate:      cur.TxDate,
					Notes:       cur.Notes,
					CategoryIDs: cur.CategoryIDs,
				},
			}
			if err := f.apply(cmd, &in.CreateOtherTransactionInput); err != nil {
				return err
			}
			ot, err := a.ledger.UpdateOtherTransaction(ctx, in)
			if err != nil {
				return err
			}
			printOthers(cmd.OutOrStdout(), []model.OtherTransaction{*ot})
			return nil
		}),
	}
	f.register(cmd)
	return cmd
}

func (c *cli) otherDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete outside store transfers",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return printBulk(cmd, "deleted", a.ledger.DeleteOtherTransactions(ctx, ids))
		}),
	}
}
