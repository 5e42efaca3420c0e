// Package runner wraps external command execution for the collectors.
// Commands run synchronously; stdout and stderr are captured separately so
// callers can surface the error stream when a command fails.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Output holds the captured streams of a finished command.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes an external command and captures its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// Func adapts an ordinary function to the Runner interface.
type Func func(ctx context.Context, name string, args ...string) (Output, error)

// Run calls f(ctx, name, args...).
func (f Func) Run(ctx context.Context, name string, args ...string) (Output, error) {
	return f(ctx, name, args...)
}

// CommandError is returned when a command cannot be started or exits non-zero.
// ExitCode is -1 when the process never ran (e.g. binary not found).
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: exit status %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout bounds each command. Zero means no timeout.
	Timeout time.Duration
}

// New creates an ExecRunner with the given per-command timeout.
func New(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args and returns the captured output.
// The output is returned even when the command fails, since some tools
// (smartctl) report useful data alongside a non-zero status.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return out, nil
	}

	cmdErr := &CommandError{
		Command:  strings.TrimSpace(name + " " + strings.Join(args, " ")),
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return out, cmdErr
}

// Available reports whether name resolves to an executable in PATH
// (or is an executable path itself).
func Available(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ExitCode extracts the exit status from an error returned by a Runner.
// It returns 0 for a nil error and -1 when no exit status is known.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}
