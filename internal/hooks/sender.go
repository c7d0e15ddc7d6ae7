package hooks

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultServerURL is where the sender posts events unless CLAUDE_HIVE_URL
// overrides it.
const DefaultServerURL = "http://localhost:4520"

// Sender forwards a single hook event from the agent to the hive server.
// The hook runner executes it once per event with the event JSON on stdin.
type Sender struct {
	ServerURL string
	Client    *http.Client
	// Now and ProjectDir are overridable for tests.
	Now        func() time.Time
	ProjectDir func() string
}

func NewSender(serverURL string) *Sender {
	if serverURL == "" {
		serverURL = os.Getenv("CLAUDE_HIVE_URL")
	}
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Sender{
		ServerURL: serverURL,
		// Short timeout: a dead hive must never stall the agent.
		Client:     &http.Client{Timeout: 2 * time.Second},
		Now:        time.Now,
		ProjectDir: resolveProjectDir,
	}
}

func resolveProjectDir() string {
	if dir := os.Getenv("CLAUDE_PROJECT_DIR"); dir != "" {
		return dir
	}
	cwd, _ := os.Getwd()
	return cwd
}

// Send reads one event object from r, stamps the sender-side metadata, and
// posts it to the hive. It swallows every failure: the hook must never
// block or fail the agent, so a dead server or bad input is a no-op.
func (s *Sender) Send(r io.Reader) {
	input, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(input)) == 0 {
		return
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(input, &payload); err != nil {
		return
	}

	stamp, _ := json.Marshal(s.Now().UTC().Format(time.RFC3339))
	payload["timestamp"] = stamp
	dir, _ := json.Marshal(s.ProjectDir())
	payload["project_dir"] = dir

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := s.Client.Post(s.ServerURL+"/events", "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
}
