// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lunash-cli/internal/resolve"
)

var (
	initForce bool

	// initCmd creates a new script in the current directory
	initCmd = &cobra.Command{
		Use:   "init <script-name>",
		Short: "Create a new script in the current directory",
		Long: `Create a skeleton <name>.lunash.lua script in the current directory.

The generated script demonstrates the host modules so you can start
from working examples.`,
		Args: cobra.ExactArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing script")
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := resolve.ValidateName(name); err != nil {
		return err
	}

	filename := name + resolve.ScriptFileSuffix

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(skeletonScript(name)), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	cmd.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	cmd.Println()
	cmd.Println(SubtitleStyle.Render("Next steps:"))
	cmd.Printf("  1. Edit %s\n", filename)
	cmd.Printf("  2. Run it with '%s'\n", CmdStyle.Render("lunash run "+name))
	return nil
}

func skeletonScript(name string) string {
	return `-- ` + name + resolve.ScriptFileSuffix + `
-- Host modules: fs, http, stringx, regex. Extra CLI args arrive in arg[1..n].

print("hello from ` + name + `")

-- Path utilities:
--   print(fs:basename("/a/b/c.txt"))   --> c.txt
--   print(fs:dirname("/a/b/c.txt"))    --> /a/b

-- String helpers:
--   local parts = stringx:split("a,b,c", ",")
--   print(stringx:trim("  x  "))       --> x

-- Regular expressions (RE2 syntax):
--   local re = regex([[\d+]])
--   if re:is_match("build 42") then print(re:find("build 42")[1]) end

-- HTTP (wrap in pcall to handle network failures):
--   local ok, body = pcall(function() return http:get("https://example.com") end)
--   if ok then print(body) end
`
}
