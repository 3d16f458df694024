// SPDX-License-Identifier: MPL-2.0

// Package config resolves the venvup configuration: defaults, the
// optional project-local venvup.toml file, VENVUP_* environment
// variables, and the fixed project-relative paths the tool operates on.
//
// The venv directory is always a pure function of the project root
// (the parent of the tool's own location); it cannot be overridden
// independently of that root.
package config
