package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/realdaly/books-log-sub000/internal/category/dto"
	"github.com/realdaly/books-log-sub000/internal/model"
)

func parseFamily(s string) (model.Family, error) {
	f := model.Family(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown category family %q (want one of %v)", s, model.Families)
	}
	return f, nil
}

func (c *cli) categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage book, party, other and store categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <family> <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(2),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			family, err := parseFamily(args[0])
			if err != nil {
				return err
			}
			cat, err := a.categories.CreateCategory(ctx, &dto.CreateCategoryInput{Family: family, Name: args[1]})
			if err != nil {
				return err
			}
			printf(cmd, "%s category %d created: %s\n", family, cat.ID, cat.Name)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list <family>",
		Short: "List the categories of a family",
		Args:  cobra.ExactArgs(1),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			family, err := parseFamily(args[0])
			if err != nil {
				return err
			}
			cats, err := a.categories.ListCategories(ctx, family)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME")
			for _, cat := range cats {
				row(tw, cat.ID, cat.Name)
			}
			return tw.Flush()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <family> <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(3),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			family, err := parseFamily(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			cat, err := a.categories.RenameCategory(ctx, &dto.RenameCategoryInput{Family: family, ID: id, Name: args[2]})
			if err != nil {
				return err
			}
			printf(cmd, "%s category %d renamed: %s\n", family, cat.ID, cat.Name)
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <family> <id>",
		Short: "Delete a category and unlink it everywhere",
		Args:  cobra.ExactArgs(2),
		RunE: c.with(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			family, err := parseFamily(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := a.categories.DeleteCategory(ctx, family, id); err != nil {
				return err
			}
			printf(cmd, "%s category %d deleted\n", family, id)
			return nil
		}),
	})
	return cmd
}
