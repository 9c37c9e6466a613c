// Package build runs the one-off build step that produces the engine binary.
package build

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrBuildFailure is matched by every build error
var ErrBuildFailure = errors.New("build failed")

// Builder produces the engine before any test runs
type Builder interface {
	Build(ctx context.Context) error
}

// Failure is returned when the build command cannot start or exits non-zero
type Failure struct {
	Command []string
	Output  string
	Err     error
}

func (f *Failure) Error() string {
	if len(f.Command) == 0 {
		return fmt.Sprintf("build: %v", f.Err)
	}
	return fmt.Sprintf("%s: %v", strings.Join(f.Command, " "), f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func (f *Failure) Is(target error) bool { return target == ErrBuildFailure }

// CommandBuilder runs a fixed command in the project directory
type CommandBuilder struct {
	command []string
	dir     string
	logger  *zap.Logger
}

// NewCommandBuilder creates a CommandBuilder
func NewCommandBuilder(command []string, dir string, logger *zap.Logger) *CommandBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandBuilder{command: command, dir: dir, logger: logger}
}

// Build runs the build command and waits for it to finish
func (b *CommandBuilder) Build(ctx context.Context) error {
	if len(b.command) == 0 {
		return &Failure{Err: errors.New("no build command configured")}
	}

	color.Cyan("Building: %s", strings.Join(b.command, " "))

	cmd := exec.CommandContext(ctx, b.command[0], b.command[1:]...)
	cmd.Dir = b.dir
	cmd.Env = os.Environ()

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	start := time.Now()
	err := cmd.Run()
	b.logger.Debug("build finished",
		zap.Strings("command", b.command),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return &Failure{Command: b.command, Output: output.String(), Err: err}
	}

	color.Green("✓ Build finished in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// NopBuilder skips the build step
type NopBuilder struct{}

// Build does nothing
func (NopBuilder) Build(context.Context) error { return nil }
