package ws

import (
	"github.com/sudoBrandino/claude-hive/internal/event"
	"github.com/sudoBrandino/claude-hive/internal/session"
)

type MessageType string

const (
	MsgInit  MessageType = "init"
	MsgEvent MessageType = "event"
)

// InitMessage is sent exactly once, as the first message on every new
// subscriber connection.
type InitMessage struct {
	Type         MessageType                `json:"type"`
	Sessions     map[string]session.Session `json:"sessions"`
	RecentEvents []event.Event              `json:"recentEvents"`
}

// EventMessage is sent for every ingested event, in ingestion order.
type EventMessage struct {
	Type    MessageType     `json:"type"`
	Event   event.Event     `json:"event"`
	Session session.Session `json:"session"`
}
