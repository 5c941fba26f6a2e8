// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lunash-cli/internal/config"
	"lunash-cli/internal/issue"
	"lunash-cli/internal/resolve"
	"lunash-cli/internal/runner"
)

// runCmd executes a resolved script
var runCmd = &cobra.Command{
	Use:   "run <script-name> [args...]",
	Short: "Resolve and execute a script",
	Long: `Resolve a bare script name to a <name>.lunash.lua file and execute it.

Arguments after the script name are passed to the script through the
arg table: arg[0] is the script path, arg[1] the first argument.

Search locations, in order of precedence:
  1. Current directory
  2. The per-user scripts directory
  3. Directories listed in LUA_SCRIPT_PATH
  4. script_path entries from the config file`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeScripts,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(cmd, args[0], args[1:])
	},
}

func runScript(cmd *cobra.Command, name string, args []string) error {
	cfg := config.Get()

	run, err := runner.New(cfg)
	if err != nil {
		return failRun(runner.PhaseResolving, err, 0)
	}

	res, err := run.Run(cmd.Context(), name, args)
	if err != nil {
		var nf *resolve.NotFoundError
		var le *runner.LoadError
		var se *runner.ScriptError
		switch {
		case errors.As(err, &nf):
			actionable := issue.NewErrorContext().
				WithOperation("resolve script").
				WithResource(name).
				WithSuggestion("Run '" + CmdStyle.Render("lunash list") + "' to see available scripts").
				WithSuggestion("Run '" + CmdStyle.Render("lunash init "+name) + "' to create it in the current directory").
				Wrap(err).
				BuildError()
			return failRun(runner.PhaseResolving, actionable, issue.ScriptNotFoundId)
		case errors.As(err, &le):
			return failRun(runner.PhaseLoading, err, issue.ScriptLoadFailedId)
		case errors.As(err, &se):
			return failRun(runner.PhaseExecuting, err, issueForScriptError(err))
		default:
			return failRun(runner.PhaseResolving, err, 0)
		}
	}

	slog.Debug("script completed", "path", res.Path, "source", res.Source.String())
	return nil
}

// failRun reports a failed phase on stderr and converts the error into
// a non-zero exit without letting cobra re-print it.
func failRun(phase runner.Phase, err error, issueID issue.Id) error {
	fmt.Fprintf(os.Stderr, "%s %s\n",
		ErrorStyle.Render(fmt.Sprintf("Error (%s):", phase)),
		formatErrorForDisplay(err, verbose))

	if issueID != 0 {
		renderIssueHelp(issueID)
	}

	return &ExitError{Code: 1, Err: err}
}

// issueForScriptError picks the catalog entry for an uncaught script
// failure. Host modules raise Lua errors with a module prefix, which
// is the only provenance an uncaught error retains once it crosses
// the interpreter boundary.
func issueForScriptError(err error) issue.Id {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "http.get:") || strings.Contains(msg, "http.post:"):
		return issue.HttpRequestFailedId
	case strings.Contains(msg, "regex:"):
		return issue.RegexCompileErrorId
	default:
		return issue.ScriptRuntimeErrorId
	}
}

// renderIssueHelp prints the catalog entry for the failure, when one exists.
func renderIssueHelp(id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(os.Stderr, rendered)
}

// completeScripts provides shell completion for script names
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		// Only the first positional is a script name.
		return nil, cobra.ShellCompDirectiveDefault
	}

	cfg := config.Get()
	r, err := resolve.New(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var completions []string
	for _, script := range r.List() {
		completions = append(completions, fmt.Sprintf("%s\t%s", script.Name, script.Source))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
