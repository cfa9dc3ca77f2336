// Package cli provides the command-line interface for twgate.
package cli

import (
	"fmt"

	"github.com/runoshun/twgate/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup  = "setup"
	groupTask   = "task"
	groupServer = "server"
)

// NewRootCommand creates the root command for twgate.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "twgate",
		Short: "Typed gateway to Taskwarrior",
		Long: `twgate drives the taskwarrior CLI and exposes its tasks as typed records.

Every invocation runs taskwarrior with confirmations disabled and JSON
output enabled, so the commands below never prompt.
Use 'twgate serve' to answer task queries over HTTP.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. broken config with --help)
			if c == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			// Config commands must work while the taskrc setting is wrong
			if cmd.GroupID == groupSetup || (cmd.HasParent() && cmd.Parent().GroupID == groupSetup) {
				return nil
			}
			return c.CheckRC()
		},
	}

	// Read by main before the container is built; declared here for help and parsing
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/twgate/config.toml)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupServer, Title: "Server:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	logCmd := newLogCommand(c)
	logCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	deleteCmd := newDeleteCommand(c)
	deleteCmd.GroupID = groupTask

	modifyCmd := newModifyCommand(c)
	modifyCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	searchCmd := newSearchCommand(c)
	searchCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	// Server commands
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServer

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		addCmd,
		logCmd,
		doneCmd,
		deleteCmd,
		modifyCmd,
		showCmd,
		listCmd,
		searchCmd,
		importCmd,
		serveCmd,
		configCmd,
	)

	return root
}
