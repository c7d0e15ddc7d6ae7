package session

import (
	"encoding/json"

	"github.com/sudoBrandino/claude-hive/internal/event"
)

// Status is the derived activity state of a session.
type Status int

const (
	Active Status = iota
	Waiting
	Idle
)

var statusNames = map[Status]string{
	Active:  "active",
	Waiting: "waiting",
	Idle:    "idle",
}

var statusFromName = map[string]Status{
	"active":  Active,
	"waiting": Waiting,
	"idle":    Idle,
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if v, ok := statusFromName[name]; ok {
		*s = v
	}
	return nil
}

// Derive maps the most recent event onto a status. It is deliberately
// stateless: status never depends on elapsed time or on any event other
// than the latest one. Unrecognized hook events fall through to active.
func Derive(hookEventName, toolName string) Status {
	switch hookEventName {
	case event.HookStop:
		return Idle
	case event.HookNotification:
		switch toolName {
		case "permission_prompt":
			return Waiting
		case "idle_prompt":
			return Idle
		}
	}
	return Active
}
