package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qtr/internal/build"
	"qtr/internal/compare"
	"qtr/internal/config"
	"qtr/internal/discovery"
	"qtr/internal/domain"
	"qtr/internal/execution"
	"qtr/internal/logging"
	"qtr/internal/storage"
	"qtr/internal/ui"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunCommand handles the run command
type RunCommand struct {
	config  *config.Config
	scanner *discovery.Scanner
	filter  *discovery.Filter
	storage storage.Storage
	out     io.Writer
	errOut  io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	st storage.Storage,
	out io.Writer,
	errOut io.Writer,
) *RunCommand {
	return &RunCommand{
		config:  cfg,
		scanner: scanner,
		filter:  filter,
		storage: st,
		out:     out,
		errOut:  errOut,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	logger := logging.New(rc.errOut, rc.config.Flags.Verbose, rc.config.GetLogPath())
	defer func() { _ = logger.Sync() }()

	mode, err := compare.ParseMode(rc.config.CompareMode)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Discover and parse specs
	files, err := discoverSpecs(rc.config, rc.scanner, rc.filter)
	if err != nil {
		var malformed *discovery.MalformedSpecError
		if errors.As(err, &malformed) {
			return rc.abort(logger, domain.Failure{
				Kind:    domain.KindMalformedSpec,
				File:    malformed.Path,
				Line:    malformed.Line,
				Message: malformed.Reason,
			}, err)
		}
		return err
	}

	if len(files) == 0 {
		color.New(color.FgYellow).Fprintf(rc.out, "No spec files found in %s\n", rc.config.GetSpecPath())
		return nil
	}

	// Build the engine once
	var builder build.Builder = build.NopBuilder{}
	if !rc.config.Flags.NoBuild {
		builder = build.NewCommandBuilder(rc.config.BuildCommand, rc.config.ProjectPath, logger)
	}
	if err := builder.Build(ctx); err != nil {
		failure := domain.Failure{Kind: domain.KindBuildFailure, Message: err.Error()}
		var bf *build.Failure
		if errors.As(err, &bf) && bf.Output != "" {
			failure.Message += "\n\n" + bf.Output
		}
		return rc.abort(logger, failure, err)
	}
	if !rc.config.Flags.NoBuild {
		fmt.Fprintln(rc.out)
	}

	var reporter ui.Reporter = ui.NewConsoleReporter(rc.out)
	if rc.config.Flags.Progress {
		reporter = ui.NewProgressReporter(domain.TotalCases(files), rc.errOut, rc.out)
	}

	engine := execution.NewProcessEngine(rc.config.GetEnginePath(), rc.config.ProjectPath, logger)
	runner := execution.NewRunner(engine, compare.New(mode), reporter, logger, execution.Options{
		Timeout: rc.config.Timeout,
		Workers: rc.config.Workers,
	})

	record, runErr := runner.Run(ctx, files)
	rc.save(logger, record)
	return runErr
}

// abort records a failure that stopped the run before any case was attempted
func (rc *RunCommand) abort(logger *zap.Logger, failure domain.Failure, err error) error {
	fmt.Fprintln(rc.out)
	ui.WriteFailure(rc.out, failure)
	rc.save(logger, &domain.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Failure:   &failure,
	})
	return err
}

func (rc *RunCommand) save(logger *zap.Logger, record *domain.RunRecord) {
	if err := rc.storage.Save(record); err != nil {
		logger.Warn("failed to save run record", zap.Error(err))
	}
}

// discoverSpecs scans the spec directory, applies the name filter and parses
// every remaining file in order
func discoverSpecs(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter) ([]*domain.TestFile, error) {
	paths, err := scanner.Scan(cfg.GetSpecPath())
	if err != nil {
		return nil, err
	}
	paths = filter.FilterByName(paths, cfg.Flags.NameFilter)
	return discovery.ParseAll(paths)
}
