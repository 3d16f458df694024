// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigFileName is the optional project-local config file, looked up
// under the project root.
const ConfigFileName = "venvup.toml"

// envPrefix namespaces the environment variable overrides (VENVUP_*).
const envPrefix = "VENVUP"

// LoadOptions control configuration resolution.
type LoadOptions struct {
	// ToolDir overrides the tool directory (primarily for tests).
	// Empty means DefaultToolDir().
	ToolDir string
	// LookupEnv overrides the active-virtualenv lookup (for tests).
	// Nil means the real process environment.
	LookupEnv func(string) (string, bool)
}

// Load resolves the full configuration: built-in defaults, the optional
// venvup.toml under the project root, then VENVUP_* env vars. Flag
// overrides are applied afterwards by the cmd layer.
func Load(opts LoadOptions) (*Config, Paths, error) {
	toolDir := opts.ToolDir
	if toolDir == "" {
		var err error
		toolDir, err = DefaultToolDir()
		if err != nil {
			return nil, Paths{}, err
		}
	}
	paths := ResolvePaths(toolDir)

	v := viper.New()

	// Defaults
	v.SetDefault("python", defaultPython())
	v.SetDefault("virtualenv_path", "")
	v.SetDefault("pip_index_url", DefaultPipIndexURL)
	v.SetDefault("pip_extra_index_url", "")
	v.SetDefault("requirements", []string{paths.DefaultRequirements})
	v.SetDefault("logging_level", DefaultLoggingLevel)

	// Environment overrides (VENVUP_PIP_INDEX_URL etc.)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Optional project-local config file
	cfgPath := filepath.Join(paths.ProjectRoot, ConfigFileName)
	if fileExists(cfgPath) {
		if err := loadTOMLIntoViper(v, cfgPath); err != nil {
			return nil, Paths{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Paths{}, fmt.Errorf("failed to parse config: %w", err)
	}

	// Derive the active-virtualenv marker once, up front. The
	// orchestrator branches on this field, never on the environment.
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	_, cfg.InVirtualEnv = lookup(VirtualEnvMarker)

	return &cfg, paths, nil
}

// loadTOMLIntoViper parses a TOML file and merges its contents into
// Viper, preserving defaults and allowing env overrides on top.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// defaultPython resolves the interpreter used for venv creation when no
// override is given: python3 from PATH, falling back to the bare name
// so process execution fails naturally if truly absent.
func defaultPython() string {
	for _, name := range []string{"python3", "python"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return "python3"
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
