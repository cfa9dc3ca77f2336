package cli

import (
	"fmt"

	"github.com/runoshun/twgate/internal/app"
	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
// Without a subcommand it behaves like 'config show'.
func newConfigCommand(c *app.Container) *cobra.Command {
	show := newConfigShowCommand(c)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Show the effective twgate configuration or create a config file.`,
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}

	cmd.AddCommand(show)
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{
				Effective: c.AppConfig,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			switch {
			case out.GlobalConfig.Path == "":
				_, _ = fmt.Fprintln(w, "- (no global config directory)")
			case out.GlobalConfig.Exists:
				_, _ = fmt.Fprintf(w, "- %s\n", out.GlobalConfig.Path)
			default:
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.GlobalConfig.Path)
			}
			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			_, _ = fmt.Fprint(w, out.Effective)
			return nil
		},
	}
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template with default values to stdout.
It does not read any configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return err
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the global config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{Force: force})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
