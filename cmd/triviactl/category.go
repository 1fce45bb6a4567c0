package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"trivia-api/internal/data"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage question categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		categories, err := data.NewCategoryRepository(db).AllCategories(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE")
		for _, c := range categories {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Type)
		}
		return w.Flush()
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [type]",
	Short: "Add a new category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("category type must not be empty")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		category := &data.Category{Type: name}
		if _, err := data.NewCategoryRepository(db).Save(cmd.Context(), category); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added category %d %q\n", category.ID, category.Type)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd)
}
