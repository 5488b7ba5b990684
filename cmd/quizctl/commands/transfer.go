// Package commands provides the quizctl subcommands.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eignung/flashcards/internal/app"
	"github.com/eignung/flashcards/internal/importer"
)

// ImportCommand returns the import command.
func ImportCommand(c *app.Container) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import questions from a JSON file",
		Long: `Import questions from a JSON file.

The file holds an array of question objects. Comments and trailing commas
are accepted. Existing questions with the same text are skipped unless
--mode=update is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport(c, &mode),
	}
	cmd.Flags().StringVar(&mode, "mode", string(importer.ConflictSkip), "what to do with existing questions: skip or update")

	return cmd
}

func runImport(c *app.Container, mode *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		conflict, err := importer.ParseConflictMode(*mode)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		report, err := c.Importer.Import(cmd.Context(), string(raw), conflict)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	}
}

func printReport(w io.Writer, r *importer.Report) {
	fmt.Fprintf(w, "imported: %d\nupdated:  %d\nskipped:  %d\n", r.Imported, r.Updated, r.Skipped)
	if len(r.Errors) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d problem(s):\n", len(r.Errors))
	for _, e := range r.Errors {
		if e.Index == importer.BatchIndex {
			fmt.Fprintf(w, "  %s\n", e.Reason)
			continue
		}
		fmt.Fprintf(w, "  #%d: %s", e.Index, e.Reason)
		if e.QuestionText != "" {
			fmt.Fprintf(w, " (%s)", e.QuestionText)
		}
		fmt.Fprintln(w)
	}
}

// ExportCommand returns the export command.
func ExportCommand(c *app.Container) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all questions as an importable JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			n, err := c.Exporter.Export(cmd.Context(), w)
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d question(s) to %s\n", n, out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")

	return cmd
}
