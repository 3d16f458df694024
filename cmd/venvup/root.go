// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"venvup/internal/bootstrap"
	"venvup/internal/config"
	"venvup/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool

	pythonPath       string
	virtualenvPath   string
	pipIndexURL      string
	pipExtraIndexURL string
	requirements     []string
	loggingLevel     string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "venvup",
		Short: "Bootstrap an isolated Python environment for this project",
		Long: TitleStyle.Render("venvup") + SubtitleStyle.Render(" - project environment bootstrapper") + `

venvup sets up the project's isolated Python runtime in three steps:
it writes the env.sh and python.sh helper scripts next to the tool if
they are absent, creates a virtualenv at <project-root>/.venv (skipped
when already running inside one), and pip-installs the configured
requirements files into it.

` + SubtitleStyle.Render("Examples:") + `
  venvup                                   Bootstrap with defaults
  venvup --python /usr/bin/python3.12      Use a specific interpreter
  venvup --requirements a.txt,b.txt        Install several manifests
  venvup config show                       Show resolved configuration`,
		SilenceUsage: true,
		RunE:         runBootstrap,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.Flags().StringVar(&pythonPath, "python", "",
		"path to the python executable used to create the environment (default: python3 from PATH)")
	rootCmd.Flags().StringVar(&virtualenvPath, "virtualenv-path", "",
		"path to virtualenv; if unspecified, searched next to the python executable")
	rootCmd.Flags().StringVar(&pipIndexURL, "pip-index-url", config.DefaultPipIndexURL,
		"URL for the package index")
	rootCmd.Flags().StringVar(&pipExtraIndexURL, "pip-extra-index-url", "",
		"extra URL for the package index")
	rootCmd.Flags().StringSliceVar(&requirements, "requirements", nil,
		"requirements file(s) to install, in order (default: <project-root>/requirements.txt)")
	rootCmd.Flags().StringVar(&loggingLevel, "logging-level", config.DefaultLoggingLevel,
		"logging level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// runBootstrap resolves the configuration and runs the setup sequence.
func runBootstrap(cmd *cobra.Command, _ []string) error {
	cfg, paths, err := config.Load(config.LoadOptions{})
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, cmd.Flags())

	if err := cfg.Validate(); err != nil {
		return issue.WrapWithOperation(err, "validate configuration")
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "venvup",
		Level:  level,
	})

	b := bootstrap.New(cfg, paths, bootstrap.WithLogger(logger))
	if err := b.Run(cmd.Context()); err != nil {
		// Surface suggestions before fang renders the error itself.
		var ae *issue.ActionableError
		if errors.As(err, &ae) && ae.HasSuggestions() {
			for _, s := range ae.Suggestions {
				fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("hint: ")+s)
			}
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Environment ready at %s\n",
		SuccessStyle.Render("✓"), paths.VenvDir)
	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded
// configuration. Unset flags keep the file/env/default value.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) {
	if flags.Changed("python") {
		cfg.Python = pythonPath
	}
	if flags.Changed("virtualenv-path") {
		cfg.VirtualenvPath = virtualenvPath
	}
	if flags.Changed("pip-index-url") {
		cfg.PipIndexURL = pipIndexURL
	}
	if flags.Changed("pip-extra-index-url") {
		cfg.PipExtraIndexURL = pipExtraIndexURL
	}
	if flags.Changed("requirements") {
		cfg.Requirements = requirements
	}
	if flags.Changed("logging-level") {
		cfg.LoggingLevel = loggingLevel
	}
}
