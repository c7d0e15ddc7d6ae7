package event

import (
	"encoding/json"
	"time"
)

// Event is one hook event reported by an agent. Field names on the wire
// match what the Claude Code hook runner emits (snake_case), plus the
// server-stamped receivedAt which is the authoritative ordering key.
type Event struct {
	SessionID     string          `json:"session_id"`
	HookEventName string          `json:"hook_event_name"`
	ToolName      string          `json:"tool_name,omitempty"`
	ToolInput     json.RawMessage `json:"tool_input,omitempty"`
	Timestamp     string          `json:"timestamp,omitempty"`
	ProjectDir    string          `json:"project_dir,omitempty"`
	ReceivedAt    time.Time       `json:"receivedAt"`
}

// Hook event names installed by `claude-hive setup`.
const (
	HookPostToolUse  = "PostToolUse"
	HookNotification = "Notification"
	HookStop         = "Stop"
)
