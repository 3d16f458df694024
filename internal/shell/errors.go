// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"fmt"
)

// ErrCommandFailed is the sentinel error wrapped by CommandFailedError.
var ErrCommandFailed = errors.New("command failed")

// CommandFailedError is returned when a materialized script exits non-zero.
// It carries the exit code and the full composed script text so the
// operator can re-run the failing command by hand.
type CommandFailedError struct {
	Code   ExitCode
	Script string
}

// Error implements the error interface.
func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("script exited with status %s:\n%s", e.Code, e.Script)
}

// Unwrap returns ErrCommandFailed so callers can use errors.Is for
// programmatic detection.
func (e *CommandFailedError) Unwrap() error { return ErrCommandFailed }
