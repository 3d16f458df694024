// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// DefaultInterpreter is the shell used when a Script does not name one.
const DefaultInterpreter = "/bin/bash"

var (
	// ErrEmptyScript is returned when a Script has no command tokens.
	ErrEmptyScript = errors.New("script has no command tokens")
	// ErrBlankToken is the sentinel error wrapped by BlankTokenError.
	ErrBlankToken = errors.New("blank command token")
)

type (
	// Script is a structured specification of a single shell invocation.
	// It is composed into a standalone script file: a shebang line, an
	// optional source line, then the argument list joined on one line.
	// Variable expansion in the tokens happens at run time, inside the
	// child shell, never at composition time.
	Script struct {
		// Interpreter is the shell named on the shebang line.
		// Defaults to DefaultInterpreter when empty.
		Interpreter string
		// SourcePath is an optional script sourced before the command
		// line runs, used to inject activation state into the child.
		SourcePath string
		// Argv is the ordered command tokens. Must be non-empty.
		Argv []string
	}

	// BlankTokenError is returned when an Argv entry is empty or
	// whitespace-only. It wraps ErrBlankToken for errors.Is compatibility.
	BlankTokenError struct {
		Index int
	}

	// SyntaxError is returned when the composed script body does not
	// parse as POSIX shell.
	SyntaxError struct {
		Cause error
	}
)

// Error implements the error interface.
func (e *BlankTokenError) Error() string {
	return fmt.Sprintf("blank command token at position %d", e.Index)
}

// Unwrap returns ErrBlankToken so callers can use errors.Is for detection.
func (e *BlankTokenError) Unwrap() error { return ErrBlankToken }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("script syntax error: %v", e.Cause)
}

// Unwrap returns the underlying parser error.
func (e *SyntaxError) Unwrap() error { return e.Cause }

// interpreter returns the effective shebang interpreter.
func (s Script) interpreter() string {
	if s.Interpreter != "" {
		return s.Interpreter
	}
	return DefaultInterpreter
}

// Compose renders the script file content: shebang, optional source line,
// then every token followed by a space and a final newline.
func (s Script) Compose() string {
	var sb strings.Builder

	sb.WriteString("#!")
	sb.WriteString(s.interpreter())
	sb.WriteString("\n")

	if s.SourcePath != "" {
		sb.WriteString("source ")
		sb.WriteString(s.SourcePath)
		sb.WriteString("\n")
	}

	for _, tok := range s.Argv {
		sb.WriteString(tok)
		sb.WriteString(" ")
	}
	sb.WriteString("\n")

	return sb.String()
}

// Validate checks the Script before materialization: the argument list
// must be non-empty, contain no blank tokens, and the composed body must
// parse as shell. This catches malformed command lines before anything
// touches the filesystem.
func (s Script) Validate() error {
	if len(s.Argv) == 0 {
		return ErrEmptyScript
	}

	for i, tok := range s.Argv {
		if strings.TrimSpace(tok) == "" {
			return &BlankTokenError{Index: i}
		}
	}

	// The shebang line is a comment to the parser, so the full composed
	// content can be checked as-is.
	if _, err := syntax.NewParser().Parse(strings.NewReader(s.Compose()), "script"); err != nil {
		return &SyntaxError{Cause: err}
	}

	return nil
}
