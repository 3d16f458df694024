// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for venvup.
//
// This package implements the Cobra command hierarchy: the root command
// runs the bootstrap sequence, and the config subcommand inspects the
// resolved configuration.
package cmd
