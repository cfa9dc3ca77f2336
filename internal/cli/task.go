package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/twgate/internal/app"
	"github.com/runoshun/twgate/internal/usecase"
	"github.com/spf13/cobra"
)

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "add <description>...",
		Short: "Add a pending task",
		Long: `Add a pending task and print the uuid taskwarrior assigned.

Examples:
  twgate add Buy milk --tag errand --tag home
  twgate add "Write report" -p Work --priority H --due 2024-05-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.draft(strings.Join(args, " "))
			if err != nil {
				return err
			}
			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{Draft: draft})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.UUID)
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}

// newLogCommand creates the log command.
func newLogCommand(c *app.Container) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "log <description>...",
		Short: "Record a task that is already done",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.draft(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if _, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Draft:     draft,
				Completed: true,
			}); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged task")
			return nil
		},
	}

	flags.register(cmd, false)
	return cmd
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <uuid>...",
		Short: "Mark tasks completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.CompleteTaskUseCase()
			var errs []error
			for _, uuid := range args {
				if _, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{UUID: uuid}); err != nil {
					errs = append(errs, err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", uuid)
			}
			return errors.Join(errs...)
		},
	}
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <uuid>...",
		Aliases: []string{"rm"},
		Short:   "Delete tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.DeleteTaskUseCase()
			var errs []error
			for _, uuid := range args {
				if _, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{UUID: uuid}); err != nil {
					errs = append(errs, err)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", uuid)
			}
			return errors.Join(errs...)
		},
	}
}

// newModifyCommand creates the modify command.
func newModifyCommand(c *app.Container) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "modify <uuid> [description]...",
		Short: "Change task attributes",
		Long: `Change task attributes. Only the given attributes are sent;
everything else stays as it is.

Examples:
  twgate modify 0b2f... --project Home
  twgate modify 0b2f... Buy oat milk --priority L`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := flags.draft(strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			out, err := c.ModifyTaskUseCase().Execute(cmd.Context(), usecase.ModifyTaskInput{
				UUID:    args[0],
				Changes: draft,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Modified task %s\n", out.Task.UUID)
			return nil
		},
	}

	flags.register(cmd, true)
	return cmd
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [uuid]",
		Short: "Show a task",
		Long:  `Show a task. Without a uuid, the most recently added task is shown.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowTaskInput{}
			if len(args) == 1 {
				in.UUID = args[0]
			}
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case formatText:
				return writeText(w, out.Task)
			case formatJSON:
				return writeJSON(w, out.Task)
			case formatYAML:
				return writeYAML(w, out.Task)
			default:
				return fmt.Errorf("unknown output format %q (use text, json or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatText, "Output format: text, json or yaml")
	return cmd
}
