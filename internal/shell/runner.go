// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

type (
	// Runner executes a materialized script file and reports its exit code.
	// The production implementation is ExecRunner; tests inject fakes to
	// record invocations without spawning processes.
	Runner interface {
		// Run executes the script at path, directing output to the given
		// writers, and returns the process exit code. A non-nil error means
		// the process could not be run at all, not a non-zero exit.
		Run(ctx context.Context, path string, stdout, stderr io.Writer) (ExitCode, error)
	}

	// ExecRunner runs scripts as real child processes via os/exec.
	ExecRunner struct{}
)

// Run executes the script file directly, relying on its shebang line to
// select the interpreter.
func (ExecRunner) Run(ctx context.Context, path string, stdout, stderr io.Writer) (ExitCode, error) {
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The process ran to completion with a non-zero status.
			return ExitCode(exitErr.ExitCode()), nil
		}
		return 1, fmt.Errorf("failed to execute script: %w", err)
	}

	return 0, nil
}
