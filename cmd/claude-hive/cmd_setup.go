package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sudoBrandino/claude-hive/internal/hooks"
)

func newSetupCmd() *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install hive hooks into Claude Code settings",
		Long: "Add PostToolUse, Notification, and Stop hooks to Claude Code's\n" +
			"settings.json so every agent event is forwarded to the hive server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSettingsPath(settingsPath)
			if err != nil {
				return err
			}

			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			command := fmt.Sprintf("%q send", exe)

			if err := hooks.Install(path, command); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Installed hive hooks into %s\n", path)
			fmt.Fprintln(cmd.OutOrStdout(), "Start the server with: claude-hive serve")
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Claude Code settings.json path (default ~/.claude/settings.json)")

	return cmd
}

func newUninstallCmd() *cobra.Command {
	var settingsPath string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove hive hooks from Claude Code settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSettingsPath(settingsPath)
			if err != nil {
				return err
			}

			removed, err := hooks.Uninstall(path)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d hive hook(s) from %s\n", removed, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Claude Code settings.json path (default ~/.claude/settings.json)")

	return cmd
}

func resolveSettingsPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	return hooks.DefaultSettingsPath()
}
