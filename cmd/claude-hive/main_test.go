package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHelpListsSubcommands(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"serve", "setup", "uninstall", "doctor"} {
		assert.Contains(t, out, sub)
	}
	// The send command is for the hook runner, not for people.
	assert.NotContains(t, out, "\n  send ")
}

func TestServeHelp(t *testing.T) {
	out, err := execute(t, "serve", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--port")
	assert.Contains(t, out, "--config")
	assert.Contains(t, out, "--mock")
	assert.Contains(t, out, "--static")
}

func TestServeRejectsMissingConfig(t *testing.T) {
	_, err := execute(t, "serve", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestSetupAndUninstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	out, err := execute(t, "setup", "--settings", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Installed hive hooks")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var settings struct {
		Hooks map[string]json.RawMessage `json:"hooks"`
	}
	require.NoError(t, json.Unmarshal(data, &settings))
	for _, name := range []string{"PostToolUse", "Notification", "Stop"} {
		assert.Contains(t, settings.Hooks, name)
	}

	out, err = execute(t, "uninstall", "--settings", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 3 hive hook(s)")
}

func TestSendNeverFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetIn(bytes.NewBufferString("{not even json"))
	cmd.SetArgs([]string{"send", "--server", "http://127.0.0.1:1"})
	require.NoError(t, cmd.Execute())
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"ok","clients":0,"sessions":2}`))
	}))
	defer srv.Close()

	require.NoError(t, checkHealth(srv.URL))
}

func TestCheckHealthFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Error(t, checkHealth(srv.URL))
	assert.Error(t, checkHealth("http://127.0.0.1:1"))
}

func TestCheckHooks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	assert.Error(t, checkHooks(path), "missing settings file")

	require.NoError(t, os.WriteFile(path, []byte(`{"hooks":{}}`), 0644))
	assert.Error(t, checkHooks(path), "settings without hive hooks")

	require.NoError(t, os.WriteFile(path, []byte(`{"hooks":{"Stop":[{"hooks":[{"command":"claude-hive send"}]}]}}`), 0644))
	assert.NoError(t, checkHooks(path))
}
