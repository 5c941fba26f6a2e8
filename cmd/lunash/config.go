// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lunash-cli/internal/config"
)

// configCmd is the parent for configuration management
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lunash configuration",
	Long: `Manage lunash configuration.

Configuration is stored in:
  - Linux: ~/.config/lunash/config.toml
  - macOS: ~/Library/Application Support/lunash/config.toml
  - Windows: %APPDATA%\lunash\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(cmd)
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out, err := config.GenerateTOML(cfg)
	if err != nil {
		return err
	}
	cmd.Print(out)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	cmd.Println(path)
	return nil
}

func initConfigFile(cmd *cobra.Command) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file '%s' already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := config.GenerateTOML(config.DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cmd.Printf("%s Created %s\n", SuccessStyle.Render("✓"), path)
	return nil
}
