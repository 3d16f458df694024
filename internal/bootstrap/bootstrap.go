// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"os"

	"venvup/internal/config"
	"venvup/internal/issue"
	"venvup/internal/shell"

	"github.com/charmbracelet/log"
)

type (
	// Bootstrapper runs the environment setup sequence against a single
	// project root.
	Bootstrapper struct {
		cfg    *config.Config
		paths  config.Paths
		exec   *shell.Executor
		logger *log.Logger
	}

	// Option configures a Bootstrapper.
	Option func(*Bootstrapper)
)

// WithExecutor overrides the shell executor (tests inject one with a
// fake runner).
func WithExecutor(e *shell.Executor) Option {
	return func(b *Bootstrapper) { b.exec = e }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Bootstrapper) { b.logger = l }
}

// New creates a Bootstrapper for the given configuration and paths.
func New(cfg *config.Config, paths config.Paths, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		cfg:    cfg,
		paths:  paths,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "bootstrap"}),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.exec == nil {
		b.exec = shell.NewExecutor(shell.WithLogger(b.logger))
	}
	return b
}

// Run executes the bootstrap sequence: write the helper scripts, create
// the virtualenv unless the process already runs inside one, then
// install the requirement manifests. The first failure aborts the rest.
func (b *Bootstrapper) Run(ctx context.Context) error {
	if err := WriteHelperScripts(b.paths); err != nil {
		return issue.NewErrorContext().
			WithOperation("write helper scripts").
			WithResource(b.paths.ToolDir).
			WithSuggestion("Check that the tool directory is writable").
			Wrap(err).
			BuildError()
	}

	if b.cfg.InVirtualEnv {
		b.logger.Debug("already inside a virtualenv, skipping venv creation")
	} else if err := b.setupVenv(ctx); err != nil {
		return issue.NewErrorContext().
			WithOperation("create virtualenv").
			WithResource(b.paths.VenvDir).
			WithSuggestion("Verify the virtualenv tool is installed for the target python").
			WithSuggestion("Pass an explicit tool location with --virtualenv-path").
			Wrap(err).
			BuildError()
	}

	if err := b.installRequirements(ctx); err != nil {
		return issue.NewErrorContext().
			WithOperation("install requirements").
			WithSuggestion("Re-run the logged script by hand to inspect pip's output").
			Wrap(err).
			BuildError()
	}

	return nil
}
