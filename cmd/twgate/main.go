// Package main is the entry point for the twgate CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/twgate/internal/app"
	"github.com/runoshun/twgate/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

// newRootCommand is replaced in tests.
var newRootCommand = cli.NewRootCommand

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Create dependency injection container
	container, err := app.New(configPathFromArgs(args), os.Stderr)
	if err != nil {
		return runWithoutContainer(args, err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := newRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// runWithoutContainer handles a config that failed to load.
// Help and version still work; everything else reports the config error.
func runWithoutContainer(args []string, configErr error) error {
	if !canRunWithoutConfig(args) {
		return fmt.Errorf("failed to initialize: %w", configErr)
	}
	rootCmd := newRootCommand(nil, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func canRunWithoutConfig(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// configPathFromArgs finds --config before cobra parses the command line,
// since the container has to exist before the commands are built.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value
		}
	}
	return ""
}
