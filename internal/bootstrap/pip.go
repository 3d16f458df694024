// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"venvup/internal/shell"
)

// pipTimeout is the fixed network timeout, in seconds, passed to pip.
const pipTimeout = "120"

// ErrMissingManifest is the sentinel error wrapped by MissingManifestError.
var ErrMissingManifest = errors.New("missing requirements file")

// MissingManifestError is returned when a requested requirements file
// does not exist. It is raised before any installation begins, so a
// missing manifest never leaves partial installs behind.
type MissingManifestError struct {
	Path string
}

// Error implements the error interface.
func (e *MissingManifestError) Error() string {
	return fmt.Sprintf("requirements file %s does not exist", e.Path)
}

// Unwrap returns ErrMissingManifest so callers can use errors.Is.
func (e *MissingManifestError) Unwrap() error { return ErrMissingManifest }

// installRequirements pip-installs every manifest in input order,
// sourcing env.sh first so pip runs against the freshly created
// environment. All manifests are checked for existence before the first
// install; a failed install aborts the remaining manifests.
func (b *Bootstrapper) installRequirements(ctx context.Context) error {
	for _, req := range b.cfg.Requirements {
		if _, err := os.Stat(req); err != nil {
			return &MissingManifestError{Path: req}
		}
	}

	base := []string{
		b.paths.Pip,
		"install",
		"--index-url=" + b.cfg.PipIndexURL,
		"--extra-index-url=" + b.cfg.PipExtraIndexURL,
		"--timeout=" + pipTimeout,
	}

	for _, req := range b.cfg.Requirements {
		b.logger.Infof("pip installing requirements file: %q", req)

		script := shell.Script{
			SourcePath: b.paths.EnvScript,
			Argv:       append(append([]string{}, base...), "--requirement="+req),
		}

		if _, err := b.exec.Run(ctx, script, false); err != nil {
			return err
		}
	}

	return nil
}
