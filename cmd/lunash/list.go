// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lunash-cli/internal/config"
	"lunash-cli/internal/resolve"
)

// listCmd lists every resolvable script
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all resolvable scripts",
	Long: `List every script reachable through the search path, in precedence
order. When the same name exists in multiple locations, only the one
'run' would pick is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listScripts(cmd)
	},
}

func listScripts(cmd *cobra.Command) error {
	cfg := config.Get()

	r, err := resolve.New(cfg)
	if err != nil {
		return err
	}

	scripts := r.List()
	if len(scripts) == 0 {
		cmd.Println(SubtitleStyle.Render("No scripts found."))
		cmd.Printf("Create one with '%s'\n", CmdStyle.Render("lunash init <name>"))
		return nil
	}

	cmd.Println(TitleStyle.Render("Available scripts:"))
	for _, script := range scripts {
		cmd.Printf("  %s  %s\n",
			CmdStyle.Render(script.Name),
			SubtitleStyle.Render(fmt.Sprintf("(%s: %s)", script.Source, script.Path)))
	}
	return nil
}
