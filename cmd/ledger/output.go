package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/database"
	"github.com/realdaly/books-log-sub000/internal/model"
)

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func printBulk[T any](cmd *cobra.Command, verb string, res *bulk.Result[T]) error {
	for _, f := range res.Failed {
		cmd.PrintErrf("%v: %v\n", f.Item, f.Err)
	}
	printf(cmd, "%s: %s\n", verb, res.Summary())
	return res.Err()
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(arg string) (int64, error) {
	ids, err := parseIDs([]string{arg})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

func parseDecimal(flag, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

func parseNullDecimal(flag, s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseDecimal(flag, s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func parseDate(flag, s string) (model.Date, error) {
	if s == "" {
		return model.Date{}, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return d, nil
}

func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// openInput returns stdin for "-" or no argument.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}

func currentVersion(ctx context.Context, a *app) (int, error) {
	return database.CurrentVersion(ctx, a.db)
}

// printf writes command output to stdout; cobra's own Printf targets stderr.
func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
