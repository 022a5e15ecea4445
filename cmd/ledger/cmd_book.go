package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/book/dto"
	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
)

type bookFlags struct {
	title          string
	printed        int64
	institution    int64
	loss           int64
	unitPrice      string
	retailPrice    string
	wholesalePrice string
	cover          string
	notes          string
	categories     []int64
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.printed, "printed", 0, "total copies printed")
	cmd.Flags().Int64Var(&f.institution, "institution", 0, "copies sent to the institution")
	cmd.Flags().Int64Var(&f.loss, "loss", 0, "manually recorded loss")
	cmd.Flags().StringVar(&f.unitPrice, "unit-price", "", "unit price")
	cmd.Flags().StringVar(&f.retailPrice, "retail-price", "", "retail price")
	cmd.Flags().StringVar(&f.wholesalePrice, "wholesale-price", "", "wholesale price")
	cmd.Flags().StringVar(&f.cover, "cover", "", "path to a cover image")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free text notes")
	cmd.Flags().Int64SliceVar(&f.categories, "category", nil, "book category id (repeatable)")
}

// apply overlays the flags the user set onto in.
func (f *bookFlags) apply(cmd *cobra.Command, in *dto.UpdateBookInput) error {
	changed := cmd.Flags().Changed
	if f.title != "" {
		in.Title = f.title
	}
	if changed("printed") {
		in.TotalPrinted = f.printed
	}
	if changed("institution") {
		in.SentToInstitution = f.institution
	}
	if changed("loss") {
		in.LossManual = f.loss
	}
	var err error
	if changed("unit-price") {
		if in.UnitPrice, err = parseDecimal("unit-price", f.unitPrice); err != nil {
			return err
		}
	}
	if changed("retail-price") {
		if in.RetailPrice, err = parseDecimal("retail-price", f.retailPrice); err != nil {
			return err
		}
	}
	if changed("wholesale-price") {
		if in.WholesalePrice, err = parseDecimal("wholesale-price", f.wholesalePrice); err != nil {
			return err
		}
	}
	if changed("cover") {
		in.CoverImage = nil
		if f.cover != "" {
			if in.CoverImage, err = os.ReadFile(f.cover); err != nil {
				return err
			}
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

func (c *cli) bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage books",
	}
	cmd.AddCommand(c.bookAddCmd(), c.bookListCmd(), c.bookShowCmd(), c.bookUpdateCmd(),
		c.bookDeleteCmd(), c.bookBatchCmd(), c.bookReorderCmd())
	return cmd
}

func (c *cli) bookAddCmd() *cobra.Command {
	f := &bookFlags{}
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			in := &dto.UpdateBookInput{Title: args[0]}
			if err := f.apply(cmd, in); err != nil {
				return err
			}
			b, err := a.books.CreateBook(ctx, &dto.CreateBookInput{
				Title:             in.Title,
				TotalPrinted:      in.TotalPrinted,
				SentToInstitution: in.SentToInstitution,
				LossManual:        in.LossManual,
				UnitPrice:         in.UnitPrice,
				RetailPrice:       in.RetailPrice,
				WholesalePrice:    in.WholesalePrice,
				CoverImage:        in.CoverImage,
				Notes:             in.Notes,
				CategoryIDs:       in.CategoryIDs,
			})
			if err != nil {
				return err
			}
			printf(cmd, "book %d created: %s\n", b.ID, b.Title)
			return nil
		}),
	}
	f.register(cmd)
	return cmd
}

func (c *cli) bookListCmd() *cobra.Command {
	filters := &dto.BookFilters{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			books, total, err := a.books.ListBooks(ctx, filters)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), books)
			printf(cmd, "%d book(s)\n", total)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&filters.SearchQuery, "search", "s", "", "search titles")
	cmd.Flags().Int64SliceVar(&filters.CategoryIDs, "category", nil, "require category id (repeatable)")
	cmd.Flags().StringVar(&filters.SortBy, "sort", "display_order", "display_order, title or created_at")
	cmd.Flags().StringVar(&filters.SortOrder, "order", "asc", "asc or desc")
	cmd.Flags().IntVar(&filters.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filters.PageSize, "page-size", 0, "page size")
	return cmd
}

func printBooks(w io.Writer, books []model.Book) {
	tw := newTable(w, "ID", "ORDER", "TITLE", "PRINTED", "INSTITUTION", "LOSS", "UNIT PRICE", "CATEGORIES")
	for _, b := range books {
		row(tw, b.ID, b.DisplayOrder, b.Title, b.TotalPrinted, b.SentToInstitution, b.LossManual, b.UnitPrice, b.CategoryIDs)
	}
	tw.Flush()
}

func (c *cli) bookShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := a.books.GetBook(ctx, id)
			if err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), []model.Book{*b})
			return nil
		}),
	}
}

func (c *cli) bookUpdateCmd() *cobra.Command {
	f := &bookFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a book; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.books.GetBook(ctx, id)
			if err != nil {
				return err
			}
			in := &dto.UpdateBookInput{
				ID:                cur.ID,
				Title:             cur.Title,
				TotalPrinted:      cur.TotalPrinted,
				SentToInstitution: cur.SentToInstitution,
				LossManual:        cur.LossManual,
				UnitPrice:         cur.UnitPrice,
				RetailPrice:       cur.RetailPrice,
				WholesalePrice:    cur.WholesalePrice,
				CoverImage:        cur.CoverImage,
				Notes:             cur.Notes,
				CategoryIDs:       cur.CategoryIDs,
			}
			if err := f.apply(cmd, in); err != nil {
				return err
			}
			b, err := a.books.UpdateBook(ctx, in)
			if err != nil {
				return err
			}
			printf(cmd, "book %d updated: %s\n", b.ID, b.Title)
			return nil
		}),
	}
	cmd.Flags().StringVar(&f.title, "title", "", "new title")
	f.register(cmd)
	return cmd
}

func (c *cli) bookDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete books together with their transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return printBulk(cmd, "deleted", a.books.DeleteBooks(ctx, ids))
		}),
	}
}

func (c *cli) bookBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Add one book per input line",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			r, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer r.Close()
			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}

			res, err := a.books.CreateBooks(ctx, bulk.SplitLines(string(data)))
			if err != nil {
				return err
			}
			for _, f := range res.Failed {
				cmd.PrintErrf("%s: %v\n", f.Item, f.Err)
			}
			printf(cmd, "%d created, %d already present, %d failed\n", len(res.Created), len(res.Existing), len(res.Failed))
			return nil
		}),
	}
}

func (c *cli) bookReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id>...",
		Short: "Move the given books to the front of the display order",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if err := a.books.ReorderBooks(ctx, ids); err != nil {
				return err
			}
			printf(cmd, "%d book(s) reordered\n", len(ids))
			return nil
		}),
	}
}
