package mock

import (
	"context"
	"testing"
	"time"

	"github.com/sudoBrandino/claude-hive/internal/event"
)

var validHooks = map[string]bool{
	event.HookPostToolUse:  true,
	event.HookNotification: true,
	event.HookStop:         true,
}

func TestNextProducesValidEvents(t *testing.T) {
	var got []event.Event
	g := NewGenerator(func(ev event.Event) { got = append(got, ev) }, time.Hour)

	ms := g.sessions[0]
	for tick := 1; tick < ms.stopAfter; tick++ {
		ev := g.next(ms, tick)
		if !validHooks[ev.HookEventName] {
			t.Fatalf("tick %d produced invalid hook event %q", tick, ev.HookEventName)
		}
		if ev.SessionID != ms.id {
			t.Fatalf("tick %d produced session %q, want %q", tick, ev.SessionID, ms.id)
		}
		if ev.HookEventName == event.HookNotification {
			if ev.ToolName != "permission_prompt" && ev.ToolName != "idle_prompt" {
				t.Fatalf("notification with unexpected tool %q", ev.ToolName)
			}
		}
		if ev.HookEventName == event.HookPostToolUse && ev.ToolName == "" {
			t.Fatal("tool use event without a tool name")
		}
	}
}

func TestSessionStopsOnce(t *testing.T) {
	g := NewGenerator(func(event.Event) {}, time.Hour)
	ms := g.sessions[0]

	ev := g.next(ms, ms.stopAfter)
	if ev.HookEventName != event.HookStop {
		t.Fatalf("at stopAfter tick got %q, want Stop", ev.HookEventName)
	}
	if !ms.stopped {
		t.Error("session not marked stopped after Stop event")
	}
}

func TestRunDeliversToSink(t *testing.T) {
	ch := make(chan event.Event, 256)
	g := NewGenerator(func(ev event.Event) {
		select {
		case ch <- ev:
		default:
		}
	}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	g.Start(ctx)
	defer cancel()

	select {
	case ev := <-ch:
		if !validHooks[ev.HookEventName] {
			t.Errorf("sink received invalid hook event %q", ev.HookEventName)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event reached the sink")
	}
}
