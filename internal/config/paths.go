// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// VenvDirName is the fixed name of the virtualenv directory under
	// the project root.
	VenvDirName = ".venv"

	// EnvScriptName is the activation helper written next to the tool.
	EnvScriptName = "env.sh"

	// PythonScriptName is the interpreter wrapper written next to the tool.
	PythonScriptName = "python.sh"

	// RequirementsFileName is the default manifest under the project root.
	RequirementsFileName = "requirements.txt"
)

// Paths are the fixed locations venvup operates on. Every field is a
// pure function of ToolDir; see ResolvePaths.
type Paths struct {
	// ToolDir is the directory holding the venvup binary and the two
	// helper scripts.
	ToolDir string
	// ProjectRoot is the parent of ToolDir.
	ProjectRoot string
	// VenvDir is <ProjectRoot>/.venv.
	VenvDir string
	// EnvScript is <ToolDir>/env.sh.
	EnvScript string
	// PythonScript is <ToolDir>/python.sh.
	PythonScript string
	// Pip is the package installer inside the venv, <VenvDir>/bin/pip.
	Pip string
	// DefaultRequirements is <ProjectRoot>/requirements.txt.
	DefaultRequirements string
}

// ResolvePaths derives every fixed location from the tool directory.
func ResolvePaths(toolDir string) Paths {
	toolDir = filepath.Clean(toolDir)
	root := filepath.Dir(toolDir)

	venvDir := filepath.Join(root, VenvDirName)

	return Paths{
		ToolDir:             toolDir,
		ProjectRoot:         root,
		VenvDir:             venvDir,
		EnvScript:           filepath.Join(toolDir, EnvScriptName),
		PythonScript:        filepath.Join(toolDir, PythonScriptName),
		Pip:                 filepath.Join(venvDir, "bin", "pip"),
		DefaultRequirements: filepath.Join(root, RequirementsFileName),
	}
}

// DefaultToolDir locates the directory containing the running binary,
// with symlinks resolved so helper files land next to the real tool.
func DefaultToolDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(resolved), nil
}
