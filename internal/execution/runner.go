package execution

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"qtr/internal/compare"
	"qtr/internal/domain"
	"qtr/internal/ui"
)

// Options tunes how a suite is executed
type Options struct {
	Timeout time.Duration // Per-case deadline, zero means none
	Workers int           // Files run concurrently when greater than one
}

// Runner executes parsed spec files against an engine, stopping at the first failure
type Runner struct {
	engine     Engine
	comparator *compare.Comparator
	reporter   ui.Reporter
	logger     *zap.Logger
	opts       Options
}

// NewRunner creates a new Runner
func NewRunner(engine Engine, comparator *compare.Comparator, reporter ui.Reporter, logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Runner{
		engine:     engine,
		comparator: comparator,
		reporter:   reporter,
		logger:     logger,
		opts:       opts,
	}
}

// Run executes files in the order given and each file's cases in file order.
// The returned record is always non-nil; the error is the one that halted the run.
func (r *Runner) Run(ctx context.Context, files []*domain.TestFile) (*domain.RunRecord, error) {
	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Files:     len(files),
		Workers:   r.opts.Workers,
	}

	var err error
	if r.opts.Workers > 1 && len(files) > 1 {
		err = r.runParallel(ctx, files, record)
	} else {
		err = r.runSequential(ctx, files, record)
	}

	record.Duration = time.Since(record.StartedAt)
	record.Passed = err == nil
	r.reporter.Finish(record)

	r.logger.Info("run finished",
		zap.String("run_id", record.ID),
		zap.Int("files", record.Files),
		zap.Int("files_passed", record.FilesPassed),
		zap.Int("cases_passed", record.CasesPassed),
		zap.Duration("duration", record.Duration),
		zap.Bool("passed", record.Passed),
	)
	return record, err
}

func (r *Runner) runSequential(ctx context.Context, files []*domain.TestFile, record *domain.RunRecord) error {
	for _, tf := range files {
		r.reporter.AnnounceFile(tf.Name)
		for i := range tf.Cases {
			tc := &tf.Cases[i]
			if err := r.runCase(ctx, tf, tc); err != nil {
				return r.fail(record, tf, tc, err)
			}
			record.CasesPassed++
			r.reporter.CasePassed()
		}
		record.FilesPassed++
	}
	return nil
}

// runCase executes one case and judges its output
func (r *Runner) runCase(ctx context.Context, tf *domain.TestFile, tc *domain.TestCase) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "run cancelled")
	}

	caseCtx := ctx
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		caseCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	r.logger.Debug("running case", zap.String("file", tf.Name), zap.Int("line", tc.Line))
	actual, err := r.engine.Execute(caseCtx, tf.DBPath, tc.Query)
	if err != nil {
		return err
	}

	if !r.comparator.Matches(tc.Expected, actual) {
		return &MismatchError{
			File:     tf.Path,
			Line:     tc.Line,
			Query:    tc.Query,
			Expected: tc.Expected,
			Actual:   actual,
		}
	}
	return nil
}

// fail records and reports the failure that halts the run. tc is nil when
// the run stopped before the file's first case.
func (r *Runner) fail(record *domain.RunRecord, tf *domain.TestFile, tc *domain.TestCase, err error) error {
	failure := domain.Failure{
		Kind:    domain.KindExecutionError,
		File:    tf.Path,
		Message: err.Error(),
	}
	if tc != nil {
		failure.Line = tc.Line
		failure.Query = tc.Query
		failure.Expected = tc.Expected
	}

	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		failure.Kind = domain.KindComparisonMismatch
		failure.Actual = mismatch.Actual
		failure.CompareMode = string(r.comparator.Mode())
	}

	record.Failure = &failure
	r.reporter.ReportFailure(failure)
	r.logger.Debug("case failed", zap.String("file", tf.Name), zap.Int("line", failure.Line), zap.Error(err))
	return err
}
