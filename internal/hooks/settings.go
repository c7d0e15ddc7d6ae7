// Package hooks manages the Claude Code side of the hive: installing hook
// commands into ~/.claude/settings.json and forwarding hook events from
// stdin to the server.
package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Hook event names the hive subscribes to.
var hookEvents = []string{"PostToolUse", "Notification", "Stop"}

// marker identifies hook entries owned by the hive, so setup can replace
// its own entries without touching anyone else's.
const marker = "claude-hive"

type hookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`
}

type hookEntry struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []hookCommand `json:"hooks"`
}

// DefaultSettingsPath returns ~/.claude/settings.json.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Install wires command into the Claude Code settings at path for every
// hook event the hive consumes. Existing hive entries are replaced;
// entries owned by other tools and unknown settings keys are preserved
// untouched.
func Install(path, command string) error {
	settings, hooks, err := readSettings(path)
	if err != nil {
		return err
	}

	entry, err := json.Marshal(hookEntry{
		Matcher: ".*",
		Hooks:   []hookCommand{{Type: "command", Command: command, Timeout: 5}},
	})
	if err != nil {
		return fmt.Errorf("marshal hook entry: %w", err)
	}

	for _, name := range hookEvents {
		kept := removeOwn(hooks[name])
		hooks[name] = append(kept, entry)
	}

	return writeSettings(path, settings, hooks)
}

// Uninstall removes every hive-owned hook entry from the settings at path.
// It reports how many entries were removed.
func Uninstall(path string) (int, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, nil
	}

	settings, hooks, err := readSettings(path)
	if err != nil {
		return 0, err
	}

	removed := 0
	for name, entries := range hooks {
		kept := removeOwn(entries)
		removed += len(entries) - len(kept)
		if len(kept) == 0 {
			delete(hooks, name)
		} else {
			hooks[name] = kept
		}
	}

	return removed, writeSettings(path, settings, hooks)
}

// removeOwn filters out entries whose command mentions the hive.
func removeOwn(entries []json.RawMessage) []json.RawMessage {
	kept := make([]json.RawMessage, 0, len(entries))
	for _, raw := range entries {
		var probe hookEntry
		mine := false
		if err := json.Unmarshal(raw, &probe); err == nil {
			for _, h := range probe.Hooks {
				if strings.Contains(h.Command, marker) {
					mine = true
					break
				}
			}
		}
		if !mine {
			kept = append(kept, raw)
		}
	}
	return kept
}

// readSettings parses the settings file into top-level raw keys plus the
// decoded hooks section. Hook entries stay raw so foreign entries survive
// a rewrite byte-for-byte. A missing file yields empty settings.
func readSettings(path string) (map[string]json.RawMessage, map[string][]json.RawMessage, error) {
	settings := make(map[string]json.RawMessage)
	hooks := make(map[string][]json.RawMessage)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, hooks, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, nil, fmt.Errorf("parse settings: %w", err)
	}
	if raw, ok := settings["hooks"]; ok {
		if err := json.Unmarshal(raw, &hooks); err != nil {
			return nil, nil, fmt.Errorf("parse hooks section: %w", err)
		}
	}
	return settings, hooks, nil
}

func writeSettings(path string, settings map[string]json.RawMessage, hooks map[string][]json.RawMessage) error {
	if len(hooks) == 0 {
		delete(settings, "hooks")
	} else {
		raw, err := json.Marshal(hooks)
		if err != nil {
			return fmt.Errorf("marshal hooks section: %w", err)
		}
		settings["hooks"] = raw
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
