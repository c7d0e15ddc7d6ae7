package main

import (
	"github.com/spf13/cobra"

	"github.com/sudoBrandino/claude-hive/internal/hooks"
)

func newSendCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:    "send",
		Hidden: true, // invoked by the Claude Code hook runner, not by people
		Short:  "Forward one hook event from stdin to the hive server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Never propagate an error: a failing hook would surface
			// inside the agent session.
			hooks.NewSender(serverURL).Send(cmd.InOrStdin())
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Hive server URL (default $CLAUDE_HIVE_URL or "+hooks.DefaultServerURL+")")

	return cmd
}
