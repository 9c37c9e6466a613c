package commands

import (
	"github.com/spf13/cobra"

	"qtr/internal/config"
	"qtr/internal/storage"
	"qtr/internal/ui"
)

// LastCommand handles the last command
type LastCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    *ui.FailureViewer
}

// NewLastCommand creates a new LastCommand
func NewLastCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter, viewer *ui.FailureViewer) *LastCommand {
	return &LastCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (lc *LastCommand) Execute(cmd *cobra.Command, args []string) error {
	record, err := lc.storage.Load()
	if err != nil {
		return err
	}

	if lc.config.Flags.Plain || record.Failure == nil {
		lc.formatter.PrintRecord(record)
		return nil
	}
	return lc.viewer.View(record)
}
