package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eignung/flashcards/internal/app"
)

// CategoryCommands returns the category management commands.
func CategoryCommands(c *app.Container) *cobra.Command {
	catCmd := &cobra.Command{
		Use:   "categories",
		Short: "Category management commands",
		Long: `Category management commands.

Available commands:
  list           - List all categories
  merge          - Move the questions of one category into another
  delete-unused  - Remove categories without questions`,
	}

	catCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cats, err := c.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, cat := range cats {
				fmt.Fprintf(tw, "%d\t%s\n", cat.ID, cat.Name)
			}
			return tw.Flush()
		},
	})

	catCmd.AddCommand(&cobra.Command{
		Use:   "merge FROM_ID TO_ID",
		Short: "Move the questions of one category into another and delete it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid FROM_ID %q", args[0])
			}
			to, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid TO_ID %q", args[1])
			}

			n, err := c.Categories.Merge(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %d question(s)\n", n)
			return nil
		},
	})

	catCmd.AddCommand(&cobra.Command{
		Use:   "delete-unused",
		Short: "Remove categories without questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.Categories.DeleteUnused(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d categor(ies)\n", n)
			return nil
		},
	})

	return catCmd
}

// StatsCommand returns the stats command.
func StatsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := c.Dashboard.Summary(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "questions: %d  correct: %d  wrong: %d\n\n", d.Totals.Total, d.Totals.Correct, d.Totals.Wrong)

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tQUESTIONS\tNEW\tCORRECT\tWRONG")
			for _, cs := range d.Categories {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", cs.Category, cs.Count, cs.NeverAnswered, cs.Correct, cs.Wrong)
			}
			return tw.Flush()
		},
	}
}
