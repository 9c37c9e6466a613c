package main

import (
	"context"
	"os"

	"qtr/internal/cli"
	"qtr/internal/cli/commands"
	"qtr/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "qtr",
		Short:         "Query engine test runner",
		Long:          `Builds the query engine, runs every spec file under tests/ against it and stops at the first case whose output differs from the expected result.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Layer qtr.yaml and the environment over the defaults
	cfg, err := config.Load(config.DefaultProjectPath)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, os.Stdout, os.Stderr)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
