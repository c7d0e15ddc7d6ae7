package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/sudoBrandino/claude-hive/internal/event"
	"github.com/sudoBrandino/claude-hive/internal/hive"
)

// Server wires the ingestion endpoint, the live feed, and the query
// surface onto an http.ServeMux.
type Server struct {
	engine    *hive.Engine
	hub       *Hub
	staticDir string
}

func NewServer(engine *hive.Engine, hub *Hub, staticDir string) *Server {
	return &Server{
		engine:    engine,
		hub:       hub,
		staticDir: staticDir,
	}
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/events", s.handleIngest)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/health", s.handleHealth)

	if s.staticDir != "" {
		log.Printf("Serving dashboard from %s", s.staticDir)
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}
}

// handleIngest accepts one hook event per request. Malformed bodies are
// rejected before any state changes; everything else is acknowledged
// unconditionally, independent of broadcast outcome.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var ev event.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	s.hub.Ingest(ev)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	c := s.hub.AddClient(conn)
	log.Printf("client %s connected from %s (%d total)", c.id, r.RemoteAddr, s.hub.ClientCount())

	// The feed is one-directional; the read loop exists only to detect
	// transport close or error and deregister promptly.
	go func() {
		defer func() {
			s.hub.RemoveClient(c)
			log.Printf("client %s disconnected (%d total)", c.id, s.hub.ClientCount())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.Sessions())
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	sessionID := r.URL.Query().Get("session")

	events := s.engine.Events(limit, sessionID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"clients":  s.hub.ClientCount(),
		"sessions": s.engine.SessionCount(),
	})
}

// checkOrigin allows same-host and localhost dashboards. The hive serves a
// single local user; there is no auth layer.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}
	if host == r.Host {
		return true
	}
	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "[::1]:") || host == "::1" {
		return true
	}
	return false
}
