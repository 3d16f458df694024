// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// DefaultPipIndexURL is the primary package index used when no
	// override is configured.
	DefaultPipIndexURL = "https://pypi.org/simple"

	// DefaultLoggingLevel is the diagnostic verbosity used when no
	// override is configured.
	DefaultLoggingLevel = "INFO"

	// VirtualEnvMarker is the environment variable an active Python
	// virtualenv sets. venvup only ever reads it, never sets it.
	VirtualEnvMarker = "VIRTUAL_ENV"
)

// ErrInvalidLoggingLevel is the sentinel error wrapped by
// InvalidLoggingLevelError.
var ErrInvalidLoggingLevel = errors.New("invalid logging level")

type (
	// Config holds the resolved bootstrap configuration. Values merge in
	// precedence order: built-in defaults, venvup.toml, VENVUP_* env
	// vars, then CLI flags (applied by the cmd layer).
	Config struct {
		// Python is the interpreter the virtualenv is created for.
		Python string `mapstructure:"python"`
		// VirtualenvPath is an explicit virtualenv tool location.
		// Empty triggers the search order in the bootstrap package.
		VirtualenvPath string `mapstructure:"virtualenv_path"`
		// PipIndexURL is the primary package index URL.
		PipIndexURL string `mapstructure:"pip_index_url"`
		// PipExtraIndexURL is an optional additional index URL.
		PipExtraIndexURL string `mapstructure:"pip_extra_index_url"`
		// Requirements are the manifest files to install, in order.
		Requirements []string `mapstructure:"requirements"`
		// LoggingLevel is the diagnostic verbosity (DEBUG, INFO, WARN, ERROR).
		LoggingLevel string `mapstructure:"logging_level"`

		// InVirtualEnv records whether the process was started inside an
		// active virtualenv. Derived once at load time from the
		// VirtualEnvMarker environment variable, never from a file.
		InVirtualEnv bool `mapstructure:"-"`
	}

	// InvalidLoggingLevelError is returned when a LoggingLevel value is
	// not recognized. It wraps ErrInvalidLoggingLevel for errors.Is
	// compatibility.
	InvalidLoggingLevelError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidLoggingLevelError) Error() string {
	return fmt.Sprintf("invalid logging level %q (expected DEBUG, INFO, WARN or ERROR)", e.Value)
}

// Unwrap returns ErrInvalidLoggingLevel so callers can use errors.Is.
func (e *InvalidLoggingLevelError) Unwrap() error { return ErrInvalidLoggingLevel }

// Level parses the configured logging level, case-insensitively.
func (c *Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(c.LoggingLevel))
	if err != nil {
		return log.InfoLevel, &InvalidLoggingLevelError{Value: c.LoggingLevel}
	}
	return lvl, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.PipIndexURL == "" {
		return errors.New("pip index URL must not be empty")
	}
	if len(c.Requirements) == 0 {
		return errors.New("at least one requirements file must be configured")
	}
	return nil
}
