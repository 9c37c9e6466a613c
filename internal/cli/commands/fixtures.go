package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qtr/internal/config"
	"qtr/internal/fixture"
)

// FixturesCommand handles the fixtures command
type FixturesCommand struct {
	config *config.Config
	out    io.Writer
}

// NewFixturesCommand creates a new FixturesCommand
func NewFixturesCommand(cfg *config.Config, out io.Writer) *FixturesCommand {
	return &FixturesCommand{
		config: cfg,
		out:    out,
	}
}

// Execute runs the command
func (fc *FixturesCommand) Execute(cmd *cobra.Command, args []string) error {
	dir := fc.config.GetDataPath()
	if len(args) > 0 {
		dir = args[0]
	}

	color.New(color.FgCyan).Fprintf(fc.out, "Checking fixtures in %s\n", dir)
	if err := fixture.Check(dir, fc.config.Flags.Suffix); err != nil {
		return errors.Wrap(err, "fixture check failed")
	}

	color.New(color.FgGreen).Fprintf(fc.out, "✓ %d table(s) are consistent\n", len(fixture.Tables))
	return nil
}
