package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/bulk"
	"github.com/realdaly/books-log-sub000/internal/model"
	"github.com/realdaly/books-log-sub000/internal/party/dto"
)

func (c *cli) partyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "party",
		Aliases: []string{"parties"},
		Short:   "Manage recipients and buyers",
	}
	cmd.AddCommand(c.partyAddCmd(), c.partyListCmd(), c.partyUpdateCmd(), c.partyDeleteCmd(),
		c.partyBatchCmd(), c.partySummaryCmd())
	return cmd
}

func (c *cli) partyAddCmd() *cobra.Command {
	in := &dto.CreatePartyInput{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a party",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			p, err := a.parties.CreateParty(ctx, in)
			if err != nil {
				return err
			}
			printf(cmd, "party %d created: %s\n", p.ID, p.Name)
			return nil
		}),
	}
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Address, "address", "", "address")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "free text notes")
	cmd.Flags().Int64SliceVar(&in.CategoryIDs, "category", nil, "party category id (repeatable)")
	return cmd
}

func (c *cli) partyListCmd() *cobra.Command {
	filters := &dto.PartyFilters{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parties",
		Args:  cobra.NoArgs,
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			parties, total, err := a.parties.ListParties(ctx, filters)
			if err != nil {
				return err
			}
			printParties(cmd.OutOrStdout(), parties)
			printf(cmd, "%d part(ies)\n", total)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&filters.SearchQuery, "search", "s", "", "search names")
	cmd.Flags().Int64SliceVar(&filters.CategoryIDs, "category", nil, "require category id (repeatable)")
	cmd.Flags().IntVar(&filters.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&filters.PageSize, "page-size", 0, "page size")
	return cmd
}

func printParties(w io.Writer, parties []model.Party) {
	tw := newTable(w, "ID", "NAME", "PHONE", "ADDRESS", "CATEGORIES")
	for _, p := range parties {
		row(tw, p.ID, p.Name, p.Phone, p.Address, p.CategoryIDs)
	}
	tw.Flush()
}

func (c *cli) partyUpdateCmd() *cobra.Command {
	var (
		name, phone, address, notes string
		categories                  []int64
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a party; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, err := a.parties.GetParty(ctx, id)
			if err != nil {
				return err
			}
			in := &dto.UpdatePartyInput{
				ID:          cur.ID,
				Name:        cur.Name,
				Phone:       cur.Phone,
				Address:     cur.Address,
				Notes:       cur.Notes,
				CategoryIDs: cur.CategoryIDs,
			}
			changed := cmd.Flags().Changed
			if changed("name") {
				in.Name = name
			}
			if changed("phone") {
				in.Phone = phone
			}
			if changed("address") {
				in.Address = address
			}
			if changed("notes") {
				in.Notes = notes
			}
			if changed("category") {
				in.CategoryIDs = categories
			}
			p, err := a.parties.UpdateParty(ctx, in)
			if err != nil {
				return err
			}
			printf(cmd, "party %d updated: %s\n", p.ID, p.Name)
			return nil
		}),
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&address, "address", "", "address")
	cmd.Flags().StringVar(&notes, "notes", "", "free text notes")
	cmd.Flags().Int64SliceVar(&categories, "category", nil, "party category id (repeatable)")
	return cmd
}

func (c *cli) partyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete parties that no transaction references",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return printBulk(cmd, "deleted", a.parties.DeleteParties(ctx, ids))
		}),
	}
}

func (c *cli) partyBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Add one party per input line, skipping known names",
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
			n, err := a.parties.CreateParties(ctx, bulk.SplitLines(string(data)))
			if err != nil {
				return err
			}
			printf(cmd, "%d part(ies) created\n", n)
			return nil
		}),
	}
}

func (c *cli) partySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <id>",
		Short: "Show what a party has received",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := a.parties.GetSummary(ctx, id)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "PARTY", "SOLD", "PENDING", "GIFTED", "LOANED", "LOST", "TRANSACTIONS")
			row(tw, s.PartyID, s.Sold, s.PendingSale, s.Gifted, s.Loaned, s.Lost, s.Transactions)
			return tw.Flush()
		}),
	}
}
