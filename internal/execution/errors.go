package execution

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrExecution is matched by every engine invocation failure
	ErrExecution = errors.New("engine execution failed")
	// ErrMismatch is matched when output differs from the expected block
	ErrMismatch = errors.New("comparison mismatch")
)

// ExecutionError describes a failed engine invocation: spawn failure,
// non-zero exit, cancellation or undecodable output
type ExecutionError struct {
	Binary   string
	DBPath   string
	Query    string
	ExitCode int // -1 when the process never exited normally
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s query %s: %v", e.Binary, e.DBPath, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + firstLine(stderr)
	}
	return msg
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ExecutionError) Is(target error) bool { return target == ErrExecution }

// MismatchError carries the full diagnostic for a failing case
type MismatchError struct {
	File     string
	Line     int
	Query    string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s:%d: output does not match expected result", e.File, e.Line)
}

func (e *MismatchError) Is(target error) bool { return target == ErrMismatch }

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
