package event

// Log is a bounded, append-only sequence of accepted events. When the
// capacity is exceeded the oldest entry is evicted, so the log behaves as
// a ring buffer over the most recent max events.
//
// Log is not safe for concurrent use; the hive engine serializes access.
type Log struct {
	max        int
	events     []Event
	toolCounts map[string]int
	hookCounts map[string]int
}

// DefaultCapacity matches the original server's MAX_EVENTS.
const DefaultCapacity = 10000

func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &Log{
		max:        max,
		toolCounts: make(map[string]int),
		hookCounts: make(map[string]int),
	}
}

// Append adds ev at the tail, evicting from the head once the log is full.
// Running counters are kept in step so stats reads stay O(1).
func (l *Log) Append(ev Event) {
	l.events = append(l.events, ev)
	l.count(ev, 1)
	if len(l.events) > l.max {
		l.count(l.events[0], -1)
		l.events = l.events[1:]
	}
}

func (l *Log) count(ev Event, delta int) {
	if ev.ToolName != "" {
		l.toolCounts[ev.ToolName] += delta
		if l.toolCounts[ev.ToolName] <= 0 {
			delete(l.toolCounts, ev.ToolName)
		}
	}
	if ev.HookEventName != "" {
		l.hookCounts[ev.HookEventName] += delta
		if l.hookCounts[ev.HookEventName] <= 0 {
			delete(l.hookCounts, ev.HookEventName)
		}
	}
}

func (l *Log) Len() int {
	return len(l.events)
}

// Recent returns a copy of the last limit events, newest last.
func (l *Log) Recent(limit int) []Event {
	if limit <= 0 || limit > len(l.events) {
		limit = len(l.events)
	}
	out := make([]Event, limit)
	copy(out, l.events[len(l.events)-limit:])
	return out
}

// BySession returns a copy of the last limit events whose session id
// matches, preserving insertion order.
func (l *Log) BySession(sessionID string, limit int) []Event {
	matched := make([]Event, 0)
	for _, ev := range l.events {
		if ev.SessionID == sessionID {
			matched = append(matched, ev)
		}
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[len(matched)-limit:]
	}
	return matched
}

// ToolCounts returns a copy of the per-tool event counts for events
// currently in the log. Events without a tool name are not counted.
func (l *Log) ToolCounts() map[string]int {
	return copyCounts(l.toolCounts)
}

// HookCounts returns a copy of the per-hook-event counts for events
// currently in the log.
func (l *Log) HookCounts() map[string]int {
	return copyCounts(l.hookCounts)
}

func copyCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}
