package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/twgate/internal/app"
	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/usecase"
	"github.com/spf13/cobra"
)

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add tasks from a YAML file",
		Long: `Add tasks from a YAML file, in file order. Use - to read stdin.

File format:
  - description: Buy milk
    tags: [errand, home]
    due: 2024-05-01T18:00:00Z
  - description: Call mom
    priority: H

A mapping with a 'tasks' key holding the same list is accepted too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Content: content,
				DryRun:  dryRun,
			})
			w := cmd.OutOrStdout()
			if out != nil {
				for _, t := range out.Created {
					_, _ = fmt.Fprintf(w, "Created task %s: %s\n", t.UUID, t.Description())
				}
			}
			if err != nil {
				return err
			}

			if dryRun {
				_, _ = fmt.Fprintf(w, "Would create %d task(s):\n", len(out.Drafts))
				return domain.WriteTaskDrafts(w, out.Drafts)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and validate without creating tasks")
	return cmd
}

// readInput reads a file, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return content, nil
}
