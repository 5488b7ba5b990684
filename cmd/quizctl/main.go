// Package main provides the command line tool for importing and maintaining
// the question base without starting the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eignung/flashcards/cmd/quizctl/commands"
	"github.com/eignung/flashcards/internal/app"
)

func main() {
	c, err := app.Bootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "quizctl",
		Short: "Flashcards maintenance tool",
		Long: `Flashcards maintenance tool

Imports and exports question files and runs the maintenance jobs on the
database configured through DB_PATH.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.AddCommand(commands.ImportCommand(c))
	rootCmd.AddCommand(commands.ExportCommand(c))
	rootCmd.AddCommand(commands.MaintenanceCommands(c)...)
	rootCmd.AddCommand(commands.CategoryCommands(c))
	rootCmd.AddCommand(commands.StatsCommand(c))

	code := 0
	if err := rootCmd.Execute(); err != nil {
		code = 1
	}
	if err := c.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: shutdown: %v\n", err)
	}
	os.Exit(code)
}
