package cli

import (
	"fmt"
	"strings"

	"github.com/runoshun/twgate/internal/app"
	"github.com/runoshun/twgate/internal/usecase"
	"github.com/spf13/cobra"
)

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Filter string
		UUIDs  []string
		Page   string
		Output string
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: fmt.Sprintf(`List tasks selected by a named filter.

Filters: %s.
The 'some' filter reads the tasks given with --uuid.
With --page, results longer than one page are cut to that page (zero-based).`,
			strings.Join(usecase.Filters, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Filter:  opts.Filter,
				UUIDs:   strings.Join(opts.UUIDs, ","),
				Page:    opts.Page,
				PageSet: cmd.Flags().Changed("page"),
			})
			if err != nil {
				return err
			}
			return writeTasks(cmd.OutOrStdout(), opts.Output, out.Tasks)
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", usecase.FilterActive, "Filter name")
	cmd.Flags().StringArrayVar(&opts.UUIDs, "uuid", nil, "Task uuid for the 'some' filter (can specify multiple)")
	cmd.Flags().StringVar(&opts.Page, "page", "", "Zero-based page number")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatTable, "Output format: table, json or yaml")

	return cmd
}

// newSearchCommand creates the search command.
func newSearchCommand(c *app.Container) *cobra.Command {
	var flags draftFlags
	var output string

	cmd := &cobra.Command{
		Use:   "search [description]...",
		Short: "Find tasks by attribute",
		Long: `Find tasks whose attributes match the given ones.

Matching follows taskwarrior's attribute filters: a description matches
as a substring, tags must all be present, other attributes must be equal.

Examples:
  twgate search --project Home --tag errand
  twgate search milk --status pending`,
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := flags.draft(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out, err := c.SearchTasksUseCase().Execute(cmd.Context(), usecase.SearchTasksInput{Template: template})
			if err != nil {
				return err
			}
			return writeTasks(cmd.OutOrStdout(), output, out.Tasks)
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}
