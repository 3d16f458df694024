// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"venvup/internal/shell"
)

// virtualenvTool is the unqualified fallback command, resolved through
// the caller's PATH by the child shell.
const virtualenvTool = "virtualenv"

// ResolveVirtualenv picks the virtualenv executable to invoke. The
// candidates are tried in order and the first existing one wins:
//
//  1. the explicit path, if given
//  2. a virtualenv sibling of the target python interpreter
//  3. virtualenv under the host python installation prefix's bin dir
//  4. the bare "virtualenv" command from PATH
//
// No candidate existing is not an error; the bare name is returned and
// process execution fails naturally if the tool is truly absent.
func ResolveVirtualenv(explicit, python, execPrefix string) string {
	candidates := []string{explicit}
	if python != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(python), virtualenvTool))
	}
	if execPrefix != "" {
		candidates = append(candidates, filepath.Join(execPrefix, "bin", virtualenvTool))
	}

	for _, c := range candidates {
		if c != "" && exists(c) {
			return c
		}
	}

	return virtualenvTool
}

// hostPythonPrefix returns the installation prefix of the python found
// on PATH (the directory above its bin dir), or empty when none exists.
func hostPythonPrefix() string {
	for _, name := range []string{"python3", "python"} {
		p, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			p = resolved
		}
		return filepath.Dir(filepath.Dir(p))
	}
	return ""
}

// setupVenv creates the virtualenv at venvDir using the resolved tool.
// Output streams through uncaptured so the operator sees virtualenv's
// own progress.
func (b *Bootstrapper) setupVenv(ctx context.Context) error {
	tool := ResolveVirtualenv(b.cfg.VirtualenvPath, b.cfg.Python, hostPythonPrefix())

	b.logger.Infof("setting up venv directory at: %q", b.paths.VenvDir)

	script := shell.Script{
		Argv: []string{
			tool,
			"--python=" + b.cfg.Python,
			"--never-download",
			b.paths.VenvDir,
		},
	}

	_, err := b.exec.Run(ctx, script, false)
	return err
}

// exists checks whether a path exists on the filesystem.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
