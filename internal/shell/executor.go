// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// Executor materializes Scripts into temporary executable files and
	// runs them through its Runner. The temporary file is removed on
	// every exit path, success or failure.
	Executor struct {
		runner Runner
		logger *log.Logger
		// stdout receives child output when capture is off
		stdout io.Writer
		// stderr is the diagnostic stream; captured output of a failed
		// script is surfaced here before the error propagates
		stderr io.Writer
	}

	// Option configures an Executor.
	Option func(*Executor)
)

// WithRunner overrides the process runner. Tests use this to inject a
// fake runner that records invocations.
func WithRunner(r Runner) Option {
	return func(e *Executor) { e.runner = r }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithStdout overrides the destination for uncaptured child output.
func WithStdout(w io.Writer) Option {
	return func(e *Executor) { e.stdout = w }
}

// WithStderr overrides the diagnostic stream.
func WithStderr(w io.Writer) Option {
	return func(e *Executor) { e.stderr = w }
}

// NewExecutor creates an Executor with production defaults: a real
// process runner, child output to the tool's own stdout/stderr, and a
// prefixed diagnostic logger.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		runner: ExecRunner{},
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "shell"}),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run validates the script, materializes it, executes it, and removes
// the temporary file. When capture is true the child's standard output
// is returned split into lines; otherwise the returned slice is nil.
//
// A non-zero exit produces a CommandFailedError carrying the exit code
// and the full composed script text; any captured output is written to
// the diagnostic stream first.
func (e *Executor) Run(ctx context.Context, script Script, capture bool) ([]string, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	body := script.Compose()

	path, err := e.materialize(body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(path) }() // Best-effort temp cleanup

	// Log the exact composed script before execution for traceability.
	e.logger.Infof("executing script:\n%s", body)

	var (
		stdout   io.Writer = e.stdout
		captured bytes.Buffer
	)
	if capture {
		stdout = &captured
	}

	code, runErr := e.runner.Run(ctx, path, stdout, e.stderr)
	if runErr != nil {
		return nil, runErr
	}

	if !code.IsSuccess() {
		if capture && captured.Len() > 0 {
			fmt.Fprintln(e.stderr, captured.String())
		}
		return nil, &CommandFailedError{Code: code, Script: body}
	}

	if capture {
		return splitLines(captured.String()), nil
	}
	return nil, nil
}

// materialize writes the script body to a uniquely named temporary file
// and marks it executable.
func (e *Executor) materialize(body string) (string, error) {
	f, err := os.CreateTemp("", "venvup-*.sh")
	if err != nil {
		return "", fmt.Errorf("failed to create temp script: %w", err)
	}
	path := f.Name()

	if _, err := f.WriteString(body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write temp script: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close temp script: %w", err)
	}
	if err := os.Chmod(path, 0o755); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to mark temp script executable: %w", err)
	}

	return path, nil
}

// splitLines splits captured output into lines, dropping the trailing
// newline. Empty output yields nil.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
