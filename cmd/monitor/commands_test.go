package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

// execute runs the CLI against server and returns stdout
func execute(t *testing.T, server *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(newApp())

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--server", server.URL}, args...))

	err := root.Execute()
	return out.String(), err
}

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestHealthCommand(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"healthy","service":"Competitor Monitor","version":"1.0.0"}`)
	})

	out, err := execute(t, server, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Competitor Monitor 1.0.0 is healthy")
}

func TestTextCommand_Human(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"analysis":{"strengths":["fast"],"weaknesses":["pricey"],"unique_offers":[],"recommendations":["discounts"],"summary":"Quick but expensive"}}`)
	})

	out, err := execute(t, server, "", "text", "Delivery in one hour")
	require.NoError(t, err)
	assert.Contains(t, out, "Quick but expensive")
	assert.Contains(t, out, "STRENGTHS:")
	assert.Contains(t, out, "1. fast")
	assert.NotContains(t, out, "UNIQUE OFFERS:")
}

func TestTextCommand_Stdin(t *testing.T) {
	var received string
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		received = body["text"]
		fmt.Fprint(w, `{"success":true,"analysis":{"strengths":[],"weaknesses":[],"unique_offers":[],"recommendations":[],"summary":"ok"}}`)
	})

	_, err := execute(t, server, "  text from a pipe  \n", "text", "-")
	require.NoError(t, err)
	assert.Equal(t, "text from a pipe", received)
}

func TestTextCommand_EmptyStdin(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	})

	_, err := execute(t, server, "   ", "text")
	assert.EqualError(t, err, "no text given")
}

func TestTextCommand_FailureIsReported(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"error":"model error: 401 - invalid key"}`)
	})

	out, err := execute(t, server, "", "text", "Delivery in one hour")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "✗ model error: 401 - invalid key")
}

func TestSiteCommand_JSON(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"url":"https://example.com","title":"Example"}}`)
	})

	out, err := execute(t, server, "", "--json", "site", "example.com")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Example", body["data"].(map[string]any)["title"])
}

func TestSiteCommand_YAML(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"url":"https://example.com"}}`)
	})

	out, err := execute(t, server, "", "-o", "yaml", "site", "example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "success: true")
}

func TestHistoryCommands(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"items":[{"id":"1","timestamp":"2026-10-15T10:00:00Z","request_type":"parse","request_summary":"URL: https://example.com","response_summary":"Title: Example"}],"total":1}`)
		case http.MethodDelete:
			fmt.Fprint(w, `{"success":true,"message":"History cleared"}`)
		}
	})

	out, err := execute(t, server, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "[parse]")
	assert.Contains(t, out, "URL: https://example.com")
	assert.Contains(t, out, "1 entries")

	out, err = execute(t, server, "", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ History cleared")
}

func TestUnknownOutputFormat(t *testing.T) {
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := execute(t, server, "", "-o", "xml", "health")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestReadText(t *testing.T) {
	text, err := readText(strings.NewReader("ignored"), []string{"argument text"})
	require.NoError(t, err)
	assert.Equal(t, "argument text", text)
}
