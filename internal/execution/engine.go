package execution

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const waitDelay = 2 * time.Second

// ProcessEngine runs the engine binary once per query:
// <binary> query <db-path> <query-text>
type ProcessEngine struct {
	binary string
	dir    string
	logger *zap.Logger
}

// NewProcessEngine creates a ProcessEngine that runs binary from dir
func NewProcessEngine(binary, dir string, logger *zap.Logger) *ProcessEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessEngine{binary: binary, dir: dir, logger: logger}
}

// Execute runs a single query and returns the engine's standard output.
// Standard error is only logged and attached to failures.
func (e *ProcessEngine) Execute(ctx context.Context, dbPath, query string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, "query", dbPath, query)
	cmd.Dir = e.dir
	cmd.Env = os.Environ()
	// Bound the wait for pipes held open by children of a killed engine
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	e.logger.Debug("engine finished",
		zap.String("db", dbPath),
		zap.Duration("took", time.Since(start)),
		zap.Int("stdout_bytes", stdout.Len()),
		zap.String("stderr", stderr.String()),
		zap.Error(err),
	)

	if err != nil {
		execErr := &ExecutionError{
			Binary:   e.binary,
			DBPath:   dbPath,
			Query:    query,
			ExitCode: -1,
			Stderr:   stderr.String(),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			execErr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			execErr.Err = ctxErr
		}
		return "", execErr
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", &ExecutionError{
			Binary:   e.binary,
			DBPath:   dbPath,
			Query:    query,
			ExitCode: 0,
			Stderr:   stderr.String(),
			Err:      errors.New("output is not valid UTF-8"),
		}
	}
	return stdout.String(), nil
}
