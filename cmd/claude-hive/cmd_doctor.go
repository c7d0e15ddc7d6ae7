package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"

	"github.com/sudoBrandino/claude-hive/internal/hooks"
)

func newDoctorCmd() *cobra.Command {
	var (
		serverURL    string
		settingsPath string
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the hive installation",
		Long:  "Run diagnostic checks: hooks installed, server process running, health endpoint reachable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := true

			path, err := resolveSettingsPath(settingsPath)
			if err != nil {
				return err
			}
			ok = report(out, "hooks installed in "+path, checkHooks(path)) && ok
			ok = report(out, "hive server process running", checkProcess()) && ok

			if serverURL == "" {
				serverURL = hooks.DefaultServerURL
			}
			ok = report(out, "health endpoint at "+serverURL, checkHealth(serverURL)) && ok

			if !ok {
				return fmt.Errorf("one or more checks failed")
			}
			fmt.Fprintln(out, "All checks passed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "Hive server URL to probe")
	cmd.Flags().StringVar(&settingsPath, "settings", "", "Claude Code settings.json path (default ~/.claude/settings.json)")

	return cmd
}

func report(w io.Writer, name string, err error) bool {
	if err != nil {
		fmt.Fprintf(w, "  ✗ %s: %v\n", name, err)
		return false
	}
	fmt.Fprintf(w, "  ✓ %s\n", name)
	return true
}

func checkHooks(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("settings not readable: %w", err)
	}
	if !strings.Contains(string(data), "claude-hive") {
		return fmt.Errorf("no hive hooks found; run `claude-hive setup`")
	}
	return nil
}

// checkProcess scans for a running `claude-hive serve` process.
func checkProcess() error {
	procs, err := process.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}
	self := os.Getpid()
	for _, p := range procs {
		if int(p.Pid) == self {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil {
			continue
		}
		if strings.Contains(cmdline, "claude-hive") && strings.Contains(cmdline, "serve") {
			return nil
		}
	}
	return fmt.Errorf("no `claude-hive serve` process found")
}

func checkHealth(serverURL string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	var health struct {
		Status   string `json:"status"`
		Clients  int    `json:"clients"`
		Sessions int    `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if health.Status != "ok" {
		return fmt.Errorf("status %q", health.Status)
	}
	return nil
}
