package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"qtr/internal/config"
	"qtr/internal/discovery"
	"qtr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	out       io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	out io.Writer,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		out:       out,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := discoverSpecs(lc.config, lc.scanner, lc.filter)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		color.New(color.FgYellow).Fprintln(lc.out, "No spec files found")
		return nil
	}

	lc.formatter.PrintSpecList(files, lc.config.Flags.TestCases)
	return nil
}
