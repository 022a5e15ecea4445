package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/transaction/dto"
)

type txFlags struct {
	txType     string
	state      string
	book       int64
	party      int64
	qty        int64
	unitPrice  string
	totalPrice string
	receipt    string
	date       string
	notes      string
	categories []int64
}

func (f *txFlags) register(cmd *cobra.Command, withBook bool) {
	cmd.Flags().StringVarP(&f.txType, "type", "t", "", "sale, gift, loan, loss or store")
	cmd.Flags().StringVar(&f.state, "state", "", "final, pending or canceled (default final)")
	if withBook {
		cmd.Flags().Int64Var(&f.book, "book", 0, "book id")
		cmd.Flags().Int64Var(&f.qty, "qty", 0, "quantity")
		cmd.Flags().StringVar(&f.unitPrice, "unit-price", "", "unit price (sales)")
		cmd.Flags().StringVar(&f.totalPrice, "total-price", "", "total price (sales)")
	}
	cmd.Flags().Int64Var(&f.party, "party", 0, "party id")
	cmd.Flags().StringVar(&f.receipt, "receipt", "", "receipt number (sales)")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free text notes")
	cmd.Flags().Int64SliceVar(&f.categories, "category", nil, "store category id (repeatable, store only)")
}

// apply overlays the flags the user set onto in.
func (f *txFlags) apply(cmd *cobra.Command, in *dto.CreateTransactionInput) error {
	changed := cmd.Flags().Changed
	var err error
	if changed("type") {
		in.Type = model.TxType(f.txType)
	}
	if changed("state") {
		in.State = model.TxState(f.state)
	}
	if changed("book") {
		in.BookID = f.book
	}
	if changed("party") {
		in.PartyID = nil
		if f.party != 0 {
			id := f.party
			in.PartyID = &id
		}
	}
	if changed("qty") {
		in.Qty = f.qty
	}
	if changed("unit-price") {
		if in.UnitPrice, err = parseNullDecimal("unit-price", f.unitPrice); err != nil {
			return err
		}
	}
	if changed("total-price") {
		if in.TotalPrice, err = parseNullDecimal("total-price", f.totalPrice); err != nil {
			return err
		}
	}
	if changed("receipt") {
		in.ReceiptNo = f.receipt
	}
	if changed("date") {
		if in.TxDate, err = parseDate("date", f.date); err != nil {
			return err
		}
	}
	if changed("notes") {
		in.Notes = f.notes
	}
	if changed("category") {
		in.CategoryIDs = f.categories
	}
	return nil
}

func (c *cli) txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and inspect ledger transactions",
	}
	cmd.AddCommand(c.txAddCmd(), c.txBatchCmd(), c.txListCmd(), c.txShowCmd(), c.txUpdateCmd(), c.txDeleteCmd())
	return cmd
}

func (c *cli) txAddCmd() *cobra.Command {
	f := &txFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record one transaction",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			in := &dto.CreateTransactionInput{}
			if err := f.apply(cmd, in); err != nil {
				return err
			}
			t, err := a.ledger.CreateTransaction(ctx, in)
			if err != nil {
				return err
			}
			printf(cmd, "transaction %d recorded: %s %d x book %d on %s\n", t.ID, t.Type, t.Qty, t.BookID, t.TxDate)
			return nil
		}),
	}
	f.register(cmd, true)
	return cmd
}

// parseLine reads BOOK:QTY[:UNIT_PRICE].
func parseLine(s string) (dto.TransactionLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return dto.TransactionLine{}, fmt.Errorf("line %q: want BOOK:QTY[:UNIT_PRICE]", s)
	}
	bookID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return dto.TransactionLine{}, fmt.Errorf("line %q: invalid book id", s)
	}
	qty, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return dto.TransactionLine{}, fmt.Errorf("line %q: invalid qty", s)
	}
	line := dto.TransactionLine{BookID: bookID, Qty: qty}
	if len(parts) == 3 {
		if line.UnitPrice, err = parseNullDecimal("line", parts[2]); err != nil {
			return dto.TransactionLine{}, err
		}
	}
	return line, nil
}

func (c *cli) txBatchCmd() *cobra.Command {
	f := &txFlags{}
	var lines []string
	cmd := &cobra.Command{
		Use:   "batch --line BOOK:QTY[:UNIT_PRICE]...",
		Short: "Record the same movement for several books at once",
		Long:  "Either every line is recorded or none is.",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			var head dto.CreateTransactionInput
			if err := f.apply(cmd, &head); err != nil {
				return err
			}
			in := &dto.CreateTransactionBatchInput{
				Type:        head.Type,
				State:       head.State,
				PartyID:     head.PartyID,
				ReceiptNo:   head.ReceiptNo,
				TxDate:      head.TxDate,
				Notes:       head.Notes,
				CategoryIDs: head.CategoryIDs,
			}
			for _, s := range lines {
				line, err := parseLine(s)
				if err != nil {
					return err
				}
				in.Lines = append(in.Lines, line)
			}
			txs, err := a.ledger.CreateTransactionBatch(ctx, in)
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), txs)
			printf(cmd, "%d transaction(s) recorded\n", len(txs))
			return nil
		}),
	}
	f.register(cmd, false)
	cmd.Flags().StringArrayVar(&lines, "line", nil, "BOOK:QTY[:UNIT_PRICE] (repeatable)")
	return cmd
}

func (c *cli) txListCmd() *cobra.Command {
	filters := &dto.TransactionFilters{}
	var types, states []string
	var from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			for _, t := range types {
				filters.Types = append(filters.Types, model.TxType(t))
			}
			for _, s := range states {
				filters.States = append(filters.States, model.TxState(s))
			}
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
			txs, total, err := a.ledger.ListTransactions(ctx, filters)
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), txs)
			printf(cmd, "%d transaction(s)\n", total)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&filters.SearchQuery, "search", "s", "", "search book titles and party names")
	cmd.Flags().StringSliceVarP(&types, "type", "t", nil, "transaction type (repeatable)")
	cmd.Flags().StringSliceVar(&states, "state", nil, "transaction state (repeatable)")
	cmd.Flags().Int64Var(&filters.BookID, "book", 0, "book id")
	cmd.Flags().Int64Var(&filters.PartyID, "party", 0, "party id")
	cmd.Flags().Int64SliceVar(&filters.CategoryIDs, "category", nil, "require store category id (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "latest date, YYYY-MM-DD")
	cmd.Flags().IntVar(&filters.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filters.PageSize, "page-size", 0, "page size")
	return cmd
}

func printTransactions(w io.Writer, txs []model.Transaction) {
	tw := newTable(w, "ID", "DATE", "TYPE", "STATE", "BOOK", "PARTY", "QTY", "UNIT", "TOTAL", "RECEIPT")
	for _, t := range txs {
		row(tw, t.ID, t.TxDate, t.Type, t.State, t.BookTitle, deref(t.PartyName), t.Qty,
			formatNull(t.UnitPrice), formatNull(t.TotalPrice), deref(t.ReceiptNo))
	}
	tw.Flush()
}

func (c *cli) txShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := a.ledger.GetTransaction(ctx, id)
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), []model.Transaction{*t})
			return nil
		}),
	}
}

func (c *cli) txUpdateCmd() *cobra.Command {
	f := &txFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a transaction; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.ledger.GetTransaction(ctx, id)
			if err != nil {
				return err
			}
			in := &dto.UpdateTransactionInput{
				ID: cur.ID,
				CreateTransactionInput: dto.CreateTransactionInput{
					Type:        cur.Type,
					State:       cur.State,
					BookID:      cur.BookID,
					PartyID:     cur.PartyID,
					Qty:         cur.Qty,
					UnitPrice:   cur.UnitPrice,
					TotalPrice:  cur.TotalPrice,
					TxDate:      cur.TxDate,
					Notes:       cur.Notes,
					CategoryIDs: cur.CategoryIDs,
				},
			}
			if cur.ReceiptNo != nil {
				in.ReceiptNo = *cur.ReceiptNo
			}
			if err := f.apply(cmd, &in.CreateTransactionInput); err != nil {
				return err
			}
			t, err := a.ledger.UpdateTransaction(ctx, in)
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), []model.Transaction{*t})
			return nil
		}),
	}
	f.register(cmd, true)
	return cmd
}

func (c *cli) txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return printBulk(cmd, "deleted", a.ledger.DeleteTransactions(ctx, ids))
		}),
	}
}
