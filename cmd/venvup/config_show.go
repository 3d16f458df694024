// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"venvup/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration-related subcommands
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage venvup configuration",
	}

	// configShowCmd prints the resolved configuration
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Long: `Show the configuration venvup would bootstrap with, after merging
defaults, the optional venvup.toml file, VENVUP_* environment
variables, and command-line flags.`,
		RunE: runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, paths, err := config.Load(config.LoadOptions{})
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, rootCmd.Flags())

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, TitleStyle.Render("venvup configuration"))
	fmt.Fprintln(out)

	rows := []struct {
		label string
		value string
	}{
		{"python", cfg.Python},
		{"virtualenv path", orUnset(cfg.VirtualenvPath)},
		{"pip index URL", cfg.PipIndexURL},
		{"pip extra index URL", orUnset(cfg.PipExtraIndexURL)},
		{"requirements", strings.Join(cfg.Requirements, ", ")},
		{"logging level", cfg.LoggingLevel},
		{"project root", paths.ProjectRoot},
		{"venv directory", paths.VenvDir},
		{"inside virtualenv", fmt.Sprintf("%v", cfg.InVirtualEnv)},
	}

	for _, row := range rows {
		fmt.Fprintf(out, "  %s %s\n", SubtitleStyle.Render(row.label+":"), row.value)
	}

	return nil
}

// orUnset renders empty optional values readably.
func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
