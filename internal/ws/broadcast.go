package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sudoBrandino/claude-hive/internal/event"
	"github.com/sudoBrandino/claude-hive/internal/hive"
	"github.com/sudoBrandino/claude-hive/internal/session"
)

type client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.hub.RemoveClient(c)
			return
		}
	}
}

// Hub tracks connected subscribers and fans ingestion results out to them.
//
// The hub mutex serializes Ingest against AddClient: a joining subscriber
// gets an init snapshot that is exact for its position in the stream, and
// every subscriber sees events in ingestion order. Only channel enqueues
// happen under the lock; network writes run in each client's write pump,
// so a slow subscriber can never stall ingestion or its peers.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
	engine  *hive.Engine

	sendBuffer int
	initEvents int
}

func NewHub(engine *hive.Engine, sendBuffer, initEvents int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	if initEvents <= 0 {
		initEvents = hive.DefaultEventLimit
	}
	return &Hub{
		clients:    make(map[*client]bool),
		engine:     engine,
		sendBuffer: sendBuffer,
		initEvents: initEvents,
	}
}

// Ingest runs one event through the engine and broadcasts the result to
// every registered subscriber. It returns the stored event and the
// post-update session so the HTTP layer can acknowledge the sender
// regardless of broadcast outcome.
func (h *Hub) Ingest(ev event.Event) (event.Event, session.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stored, sess := h.engine.Ingest(ev)

	data, err := json.Marshal(EventMessage{Type: MsgEvent, Event: stored, Session: sess})
	if err != nil {
		log.Printf("hive: marshal event broadcast: %v", err)
		return stored, sess
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Subscriber can't keep up; cut it loose rather than block.
			log.Printf("hive: client %s too slow, disconnecting", c.id)
			h.drop(c)
		}
	}
	return stored, sess
}

// AddClient registers conn as a subscriber and queues its init snapshot.
// The snapshot is captured and the client registered under the hub lock,
// so the init message is always first and no ingested event is either
// duplicated in or missing from the subsequent stream.
func (h *Hub) AddClient(conn *websocket.Conn) *client {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  h,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	sessions, recent := h.engine.Snapshot(h.initEvents)
	data, err := json.Marshal(InitMessage{Type: MsgInit, Sessions: sessions, RecentEvents: recent})
	if err != nil {
		log.Printf("hive: marshal init snapshot: %v", err)
	} else {
		c.send <- data // buffered and empty, cannot block
	}
	h.clients[c] = true
	h.mu.Unlock()

	go c.writePump()
	return c
}

// RemoveClient deregisters c. Safe to call concurrently with broadcasts
// and more than once; a send to an already-removed client is simply never
// attempted again.
func (h *Hub) RemoveClient(c *client) {
	h.mu.Lock()
	h.drop(c)
	h.mu.Unlock()
}

// drop removes and closes c. Caller must hold h.mu.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
