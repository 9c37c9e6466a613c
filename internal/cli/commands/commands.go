package commands

import (
	"io"

	"qtr/internal/cli"
	"qtr/internal/config"
	"qtr/internal/discovery"
	"qtr/internal/storage"
	"qtr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Last     *LastCommand
	Fixtures *FixturesCommand
}

// NewCommands creates all commands with dependencies. Regular output goes to
// out, logs and the progress bar to errOut.
func NewCommands(cfg *config.Config, out, errOut io.Writer) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore, cfg.SpecExtensions)
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, out)
	failureViewer := ui.NewFailureViewer()

	return &Commands{
		Run:      NewRunCommand(cfg, scanner, filter, jsonStorage, out, errOut),
		List:     NewListCommand(cfg, scanner, filter, formatter, out),
		Last:     NewLastCommand(cfg, jsonStorage, formatter, failureViewer),
		Fixtures: NewFixturesCommand(cfg, out),
	}
}

// Register registers all commands with cobra. Running the root command
// without a subcommand behaves like run with default settings.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log engine invocations and timings")
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = c.Run.Execute
	rootCmd.PreRunE = applyFlags

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Build the engine and run every spec file",
		Long:    "Build the engine, discover spec files and run their cases in order, stopping at the first failure",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().StringVarP(&flags.SpecDir, "spec-dir", "d", "", "Directory to discover spec files in (default from config, \"tests\")")
	runCmd.Flags().StringVarP(&flags.Engine, "engine", "e", "", "Path to the engine binary")
	runCmd.Flags().BoolVar(&flags.NoBuild, "no-build", false, "Skip the build step and use the existing engine binary")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter spec files by name pattern (supports wildcards, e.g., '*joins*')")
	runCmd.Flags().StringVar(&flags.Compare, "compare", "", "Output comparison mode: strict or prefix")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Deadline for a single engine call, e.g. 30s (default none)")
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of spec files to run concurrently")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar instead of a dot per case")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered spec files",
		Long:    "Scan and parse all spec files without running them",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	listCmd.Flags().StringVarP(&flags.SpecDir, "spec-dir", "d", "", "Directory to discover spec files in")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter spec files by name pattern (supports wildcards, e.g., '*joins*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "cases", "c", false, "List the cases of each spec file")
	rootCmd.AddCommand(listCmd)

	// Last command
	lastCmd := &cobra.Command{
		Use:     "last",
		Short:   "Show the last run",
		Long:    "Display the failure from the last run in an interactive viewer",
		Args:    cobra.NoArgs,
		RunE:    c.Last.Execute,
		PreRunE: applyFlags,
	}
	lastCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print the run summary instead of opening the viewer")
	rootCmd.AddCommand(lastCmd)

	// Fixtures command
	fixturesCmd := &cobra.Command{
		Use:     "fixtures [dir]",
		Short:   "Check generated fixtures",
		Long:    "Verify field formats and referential integrity of the generated CSV fixtures",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Fixtures.Execute,
		PreRunE: applyFlags,
	}
	fixturesCmd.Flags().StringVarP(&flags.Suffix, "suffix", "s", "", "File name suffix of the fixture set, e.g. _small")
	rootCmd.AddCommand(fixturesCmd)
}
