// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for lunash.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"lunash-cli/internal/config"
	"lunash-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
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
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "lunash",
		Short: "A Lua script runner with host superpowers",
		Long: TitleStyle.Render("lunash") + SubtitleStyle.Render(" - A Lua script runner with host superpowers") + `

lunash resolves a bare script name to a <name>.lunash.lua file across
an ordered search path and executes it in an embedded Lua interpreter.
Scripts get host modules for path utilities (fs), HTTP requests (http),
string helpers (stringx) and regular expressions (regex).

Scripts are resolved from:
  1. Current directory
  2. The per-user scripts directory
  3. Directories listed in LUA_SCRIPT_PATH
  4. script_path entries from the config file

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a script with: lunash init hello
  2. Edit hello.lunash.lua
  3. Run it with: lunash run hello

` + SubtitleStyle.Render("Examples:") + `
  lunash run deploy          Run deploy.lunash.lua
  lunash run deploy v1 v2    Run it with arg[1]="v1", arg[2]="v2"
  lunash list                List every resolvable script
  lunash which deploy        Show which file 'run deploy' would execute`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/lunash/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(whichCmd)
	rootCmd.AddCommand(initCmd)
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
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	initLogging()
}

// initLogging installs a charmbracelet/log handler as the slog default
// so internal packages can log through log/slog.
func initLogging() {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	slog.SetDefault(slog.New(handler))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
