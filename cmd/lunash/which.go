// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"lunash-cli/internal/config"
	"lunash-cli/internal/resolve"
	"lunash-cli/internal/runner"
)

// whichCmd prints the path 'run' would execute
var whichCmd = &cobra.Command{
	Use:               "which <script-name>",
	Short:             "Show which file a script name resolves to",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeScripts,
	RunE: func(cmd *cobra.Command, args []string) error {
		return whichScript(cmd, args[0])
	},
}

func whichScript(cmd *cobra.Command, name string) error {
	cfg := config.Get()

	r, err := resolve.New(cfg)
	if err != nil {
		return err
	}

	resolved, err := r.Resolve(name)
	if err != nil {
		return failRun(runner.PhaseResolving, err, 0)
	}

	cmd.Println(resolved.Path)
	if verbose {
		cmd.Println(SubtitleStyle.Render("found in: " + resolved.Source.String()))
	}
	return nil
}
