package session

import (
	"encoding/json"
	"testing"

	"github.com/sudoBrandino/claude-hive/internal/event"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		hook string
		tool string
		want Status
	}{
		{"stop", event.HookStop, "", Idle},
		{"stop with tool", event.HookStop, "Bash", Idle},
		{"permission prompt", event.HookNotification, "permission_prompt", Waiting},
		{"idle prompt", event.HookNotification, "idle_prompt", Idle},
		{"other notification", event.HookNotification, "something_else", Active},
		{"notification without tool", event.HookNotification, "", Active},
		{"post tool use", event.HookPostToolUse, "Bash", Active},
		{"unrecognized hook", "PreCompact", "", Active},
		{"empty hook", "", "", Active},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(tt.hook, tt.tool); got != tt.want {
				t.Errorf("Derive(%q, %q) = %v, want %v", tt.hook, tt.tool, got, tt.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Active, "active"},
		{Waiting, "waiting"},
		{Idle, "idle"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusJSONRoundTrip(t *testing.T) {
	for _, status := range []Status{Active, Waiting, Idle} {
		data, err := json.Marshal(status)
		if err != nil {
			t.Fatalf("marshal %v: %v", status, err)
		}
		var got Status
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != status {
			t.Errorf("round trip of %v produced %v", status, got)
		}
	}
}
