package session

import (
	"time"

	"github.com/sudoBrandino/claude-hive/internal/event"
)

// UnknownSession is the sentinel session id assigned to events that arrive
// without one, and the sentinel project for sessions with no project dir.
const UnknownSession = "unknown"

// Session is the aggregate derived state for one session id.
type Session struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"startedAt"`
	LastActivity  time.Time `json:"lastActivity"`
	ToolCallCount int       `json:"toolCallCount"`
	LastTool      string    `json:"lastTool,omitempty"`
	Status        Status    `json:"status"`
	Project       string    `json:"project"`
}

// Store maps session ids to derived session state. It holds pure data and
// transition logic only; the hive engine serializes all access, so Store
// itself does no locking.
type Store struct {
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Upsert applies ev to the session identified by ev.SessionID, creating it
// lazily on first sight. The returned Session is a value snapshot, never a
// live reference into the store.
func (s *Store) Upsert(ev event.Event) Session {
	st, ok := s.sessions[ev.SessionID]
	if !ok {
		project := ev.ProjectDir
		if project == "" {
			project = UnknownSession
		}
		st = &Session{
			ID:        ev.SessionID,
			StartedAt: ev.ReceivedAt,
			Project:   project,
		}
		s.sessions[ev.SessionID] = st
	}

	st.LastActivity = ev.ReceivedAt
	st.ToolCallCount++
	if ev.ToolName != "" {
		st.LastTool = ev.ToolName
	}
	st.Status = Derive(ev.HookEventName, ev.ToolName)

	return *st
}

func (s *Store) Get(id string) (Session, bool) {
	st, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *st, true
}

// Snapshot returns a defensive copy of the full session mapping.
func (s *Store) Snapshot() map[string]Session {
	out := make(map[string]Session, len(s.sessions))
	for id, st := range s.sessions {
		out[id] = *st
	}
	return out
}

func (s *Store) Len() int {
	return len(s.sessions)
}

// ActiveCount reports how many sessions are currently active.
func (s *Store) ActiveCount() int {
	count := 0
	for _, st := range s.sessions {
		if st.Status == Active {
			count++
		}
	}
	return count
}
