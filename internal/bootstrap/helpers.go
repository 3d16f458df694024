// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	_ "embed"
	"fmt"
	"os"

	"venvup/internal/config"
)

// Helper script contents. Shell variable expansion inside them happens
// when the scripts run, never at generation time.
var (
	//go:embed scripts/env.sh
	envScript string

	//go:embed scripts/python.sh
	pythonScript string
)

// WriteHelperScripts writes env.sh and python.sh into the tool
// directory. Files that already exist are left untouched, so a second
// run is a guaranteed no-op. The python wrapper is marked executable.
func WriteHelperScripts(paths config.Paths) error {
	if err := writeIfAbsent(paths.EnvScript, envScript, 0o644); err != nil {
		return err
	}
	return writeIfAbsent(paths.PythonScript, pythonScript, 0o755)
}

// writeIfAbsent writes content to path unless a file is already there.
func writeIfAbsent(path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("failed to write helper script %s: %w", path, err)
	}
	return nil
}
