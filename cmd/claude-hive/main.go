package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "claude-hive",
		Short: "Live visualization server for Claude Code agent sessions",
		Long: "Claude Hive receives hook events from Claude Code, derives per-session\n" +
			"status, and streams everything to connected dashboards over WebSocket.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		newServeCmd(),
		newSetupCmd(),
		newUninstallCmd(),
		newSendCmd(),
		newDoctorCmd(),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("claude-hive %s\n", Version))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
