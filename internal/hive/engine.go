package hive

import (
	"sync"
	"time"

	"github.com/sudoBrandino/claude-hive/internal/event"
	"github.com/sudoBrandino/claude-hive/internal/session"
)

// DefaultEventLimit is the number of events returned by queries and init
// snapshots when the caller does not ask for a specific limit.
const DefaultEventLimit = 100

// Stats is the aggregate view served by /api/stats.
type Stats struct {
	TotalSessions  int            `json:"totalSessions"`
	TotalEvents    int            `json:"totalEvents"`
	ActiveSessions int            `json:"activeSessions"`
	ToolCounts     map[string]int `json:"toolCounts"`
	EventCounts    map[string]int `json:"eventCounts"`
}

// Engine owns the session store and event log. All mutation funnels
// through Ingest under a single write lock; every read hands out copies,
// so no caller ever holds a live reference into the stores.
type Engine struct {
	mu       sync.RWMutex
	sessions *session.Store
	events   *event.Log
	now      func() time.Time
}

func New(maxEvents int) *Engine {
	return &Engine{
		sessions: session.NewStore(),
		events:   event.NewLog(maxEvents),
		now:      time.Now,
	}
}

// Ingest stamps, stores, and derives state for one accepted event. The
// returned event and session are snapshots safe to hand to subscribers.
func (e *Engine) Ingest(ev event.Event) (event.Event, session.Session) {
	ev.ReceivedAt = e.now().UTC()
	if ev.SessionID == "" {
		ev.SessionID = session.UnknownSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	sess := e.sessions.Upsert(ev)
	e.events.Append(ev)
	return ev, sess
}

// Sessions returns the full session mapping.
func (e *Engine) Sessions() map[string]session.Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessions.Snapshot()
}

// Events returns the most recent events, optionally restricted to one
// session. A non-positive limit falls back to DefaultEventLimit.
func (e *Engine) Events(limit int, sessionID string) []event.Event {
	if limit <= 0 {
		limit = DefaultEventLimit
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if sessionID != "" {
		return e.events.BySession(sessionID, limit)
	}
	return e.events.Recent(limit)
}

// Snapshot returns a consistent point-in-time pair of the session mapping
// and the last recentLimit events, for late-join init messages.
func (e *Engine) Snapshot(recentLimit int) (map[string]session.Session, []event.Event) {
	if recentLimit <= 0 {
		recentLimit = DefaultEventLimit
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessions.Snapshot(), e.events.Recent(recentLimit)
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		TotalSessions:  e.sessions.Len(),
		TotalEvents:    e.events.Len(),
		ActiveSessions: e.sessions.ActiveCount(),
		ToolCounts:     e.events.ToolCounts(),
		EventCounts:    e.events.HookCounts(),
	}
}

func (e *Engine) SessionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessions.Len()
}
