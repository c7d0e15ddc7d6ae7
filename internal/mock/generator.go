// Package mock feeds a synthetic stream of hook events through the
// ingestion path, so the dashboard can be developed without a live agent.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/sudoBrandino/claude-hive/internal/event"
)

var commonTools = []string{"Read", "Write", "Edit", "Bash", "Grep", "Glob", "Task", "WebFetch"}

type mockSession struct {
	id      string
	project string
	// stopAfter is the tick at which the session sends its Stop event.
	stopAfter int
	stopped   bool
}

type Generator struct {
	sink     func(event.Event)
	interval time.Duration
	rng      *rand.Rand
	sessions []*mockSession
}

// NewGenerator builds a generator that pushes events into sink, normally
// the hub's Ingest method.
func NewGenerator(sink func(event.Event), interval time.Duration) *Generator {
	if interval <= 0 {
		interval = 800 * time.Millisecond
	}
	return &Generator{
		sink:     sink,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: []*mockSession{
			{id: "mock-refactor", project: "/home/user/myproject", stopAfter: 120},
			{id: "mock-tests", project: "/home/user/webapp", stopAfter: 60},
			{id: "mock-migration", project: "/home/user/database", stopAfter: 200},
		},
	}
}

func (g *Generator) Start(ctx context.Context) {
	go g.run(ctx)
}

func (g *Generator) run(ctx context.Context) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick++
			for _, ms := range g.sessions {
				if ms.stopped {
					continue
				}
				g.sink(g.next(ms, tick))
			}
		}
	}
}

// next produces the session's event for this tick: mostly tool use, an
// occasional permission or idle prompt, and eventually a stop.
func (g *Generator) next(ms *mockSession, tick int) event.Event {
	ev := event.Event{
		SessionID:  ms.id,
		ProjectDir: ms.project,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	switch {
	case tick >= ms.stopAfter:
		ms.stopped = true
		ev.HookEventName = event.HookStop
	case g.rng.Intn(12) == 0:
		ev.HookEventName = event.HookNotification
		if g.rng.Intn(2) == 0 {
			ev.ToolName = "permission_prompt"
		} else {
			ev.ToolName = "idle_prompt"
		}
	default:
		ev.HookEventName = event.HookPostToolUse
		ev.ToolName = commonTools[g.rng.Intn(len(commonTools))]
		ev.ToolInput = json.RawMessage(fmt.Sprintf(`{"description":"mock %s call #%d"}`, ev.ToolName, tick))
	}
	return ev
}
