package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eignung/flashcards/internal/app"
)

var errNotConfirmed = errors.New("refusing to delete all questions without --yes")

// MaintenanceCommands returns the cleanup, categorize, reset-stats and
// truncate commands.
func MaintenanceCommands(c *app.Container) []*cobra.Command {
	return []*cobra.Command{
		cleanupCmd(c),
		categorizeCmd(c),
		resetStatsCmd(c),
		truncateCmd(c),
	}
}

func cleanupCmd(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove duplicate, empty and placeholder questions",
		Long: `Remove problematic questions.

Runs four passes in order: exact duplicates, near duplicates (90% similar
question text), multiple-choice questions without answers and rows made of
placeholder values only. The oldest question of a duplicate group is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.Maintenance.Cleanup(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "exact duplicates: %d\n", res.ExactDuplicates)
			fmt.Fprintf(w, "near duplicates:  %d\n", res.NearDuplicates)
			fmt.Fprintf(w, "empty choices:    %d\n", res.EmptyChoices)
			fmt.Fprintf(w, "placeholders:     %d\n", res.Placeholders)
			fmt.Fprintf(w, "removed:          %d\n", res.Total())
			return nil
		},
	}
}

func categorizeCmd(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Assign every question a category by keyword",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.Maintenance.AutoCategorize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categorized %d question(s)\n", n)
			return nil
		},
	}
}

func resetStatsCmd(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-stats",
		Short: "Zero the answer counters of every question",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.Maintenance.ResetStatistics(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset statistics, %d question(s)\n", n)
			return nil
		},
	}
}

func truncateCmd(c *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "truncate",
		Short: "Delete every question",
		Long:  `Delete every question. Categories are kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errNotConfirmed
			}
			n, err := c.Maintenance.Truncate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "questions left: %d\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all questions")

	return cmd
}
