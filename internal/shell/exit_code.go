// SPDX-License-Identifier: MPL-2.0

package shell

import "strconv"

// ExitCode represents a child process exit status code.
// Exit codes are in the range 0-255 on POSIX systems.
// The zero value (0) means success.
type ExitCode int

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
