package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/kmabeeTT/claude-code-history/internal/config"
)

// fixtureHandlers builds a Handlers instance over a temp projects tree
// with two unindexed sessions, "alpha" (Jan 2024) and "beta" (Feb 2024).
func fixtureHandlers(t *testing.T) *Handlers {
	t.Helper()
	claudeDir := t.TempDir()
	projectDir := filepath.Join(claudeDir, "projects", "-home-user-proj")
	require.NoError(t, os.MkdirAll(projectDir, 0700))

	writeTranscript(t, projectDir, "alpha", "main",
		[2]string{"2024-01-01T10:00:00Z", "Fix the flaky test"},
		[2]string{"2024-01-01T10:00:30Z", "Hello World appears exactly once here"},
	)
	writeTranscript(t, projectDir, "beta", "feature/search",
		[2]string{"2024-02-01T10:00:00Z", "Add search endpoint"},
		[2]string{"2024-02-01T10:00:30Z", "Sure, adding the endpoint now"},
	)

	cfg := &config.Config{
		ClaudeDir:        claudeDir,
		MaxMessageLength: 2000,
		PreviewContext:   100,
	}
	return NewHandlers(cfg, t.TempDir())
}

func writeTranscript(t *testing.T, projectDir, id, branch string, lines ...[2]string) {
	t.Helper()
	content := ""
	for i, line := range lines {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		content += fmt.Sprintf(
			`{"type":%q,"timestamp":%q,"gitBranch":%q,"cwd":"/home/user/proj","message":{"role":%q,"content":%q}}`+"\n",
			role, line[0], branch, role, line[1])
	}
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, id+".jsonl"), []byte(content), 0600))
}

// request builds a CallToolRequest carrying the given arguments.
func request(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// payload unmarshals a successful tool result's JSON text into out.
func payload(t *testing.T, res *mcp.CallToolResult, out any) {
	t.Helper()
	require.False(t, res.IsError, "expected success result")
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	require.NoError(t, json.Unmarshal([]byte(text.Text), out))
}

// errorPayload extracts the error object from a failed tool result.
func errorPayload(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	require.True(t, res.IsError, "expected error result")
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object in payload")
	return errObj
}

func TestToolRegistry(t *testing.T) {
	want := []string{
		"history_list", "history_search", "history_grep",
		"history_view", "history_stats", "history_export",
	}
	require.ElementsMatch(t, want, AllToolNames())
}

func TestValidateDisabledTools(t *testing.T) {
	require.Empty(t, ValidateDisabledTools([]string{"history_list", "history_stats"}))
	require.Equal(t, []string{"history_nope"},
		ValidateDisabledTools([]string{"history_view", "history_nope"}))
}

func TestDecode(t *testing.T) {
	req := request(map[string]any{"query": "hello", "limit": 3})
	got, err := decode[SearchRequest](req)
	require.NoError(t, err)
	require.Equal(t, "hello", got.Query)
	require.Equal(t, 3, got.Limit)
}

func TestHandleList_SortedNewestFirst(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleList(context.Background(), request(nil))
	require.NoError(t, err)

	var out struct {
		Sessions []struct {
			SessionID string `json:"sessionId"`
		} `json:"sessions"`
		Total int `json:"total"`
	}
	payload(t, res, &out)
	require.Equal(t, 2, out.Total)
	require.Equal(t, "beta", out.Sessions[0].SessionID)
	require.Equal(t, "alpha", out.Sessions[1].SessionID)
}

func TestHandleList_BranchFilter(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleList(context.Background(), request(map[string]any{"branch": "feature"}))
	require.NoError(t, err)

	var out struct {
		Total int `json:"total"`
	}
	payload(t, res, &out)
	require.Equal(t, 1, out.Total)
}

func TestHandleList_BadDate(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleList(context.Background(), request(map[string]any{"since": "last tuesday"}))
	require.NoError(t, err)

	errObj := errorPayload(t, res)
	require.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestHandleSearch_MissingQuery(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleSearch(context.Background(), request(map[string]any{"query": "  "}))
	require.NoError(t, err)

	errObj := errorPayload(t, res)
	require.Equal(t, "INVALID_REQUEST", errObj["code"])
}

func TestHandleGrep(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleGrep(context.Background(), request(map[string]any{"query": "hello world"}))
	require.NoError(t, err)

	var out struct {
		Results []struct {
			MatchCount int `json:"match_count"`
		} `json:"results"`
	}
	payload(t, res, &out)
	require.Len(t, out.Results, 1)
	require.Equal(t, 1, out.Results[0].MatchCount)
}

func TestHandleView_TruncatesMessages(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleView(context.Background(),
		request(map[string]any{"target": "alpha", "max_message_length": 5}))
	require.NoError(t, err)

	var out ViewResponse
	payload(t, res, &out)
	require.Equal(t, "alpha", out.Session.SessionID)
	require.Len(t, out.Messages, 2)
	require.Equal(t, "Fix t", out.Messages[0].Text)
	require.Equal(t, "user", out.Messages[0].Role)
}

func TestHandleView_NumberOutOfRange(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleView(context.Background(), request(map[string]any{"target": "99"}))
	require.NoError(t, err)

	errObj := errorPayload(t, res)
	require.Equal(t, "OUT_OF_RANGE", errObj["code"])
	require.Contains(t, errObj["message"], "out of range")
}

func TestHandleView_UnknownID(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleView(context.Background(), request(map[string]any{"target": "gamma"}))
	require.NoError(t, err)

	errObj := errorPayload(t, res)
	require.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestHandleStats(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleStats(context.Background(), request(nil))
	require.NoError(t, err)

	var out struct {
		TotalSessions int     `json:"total_sessions"`
		TotalMessages int     `json:"total_messages"`
		AvgMessages   float64 `json:"avg_messages_per_session"`
	}
	payload(t, res, &out)
	require.Equal(t, 2, out.TotalSessions)
	require.Equal(t, 4, out.TotalMessages)
	require.InDelta(t, 2.0, out.AvgMessages, 0.001)
}

func TestHandleExport_DefaultPath(t *testing.T) {
	h := fixtureHandlers(t)

	res, err := h.HandleExport(context.Background(), request(map[string]any{"target": "alpha"}))
	require.NoError(t, err)

	var out struct {
		Path   string `json:"path"`
		Format string `json:"format"`
	}
	payload(t, res, &out)
	require.Equal(t, "markdown", out.Format)
	require.Equal(t, filepath.Join(h.baseDir, "exports", "alpha.md"), out.Path)

	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Session alpha")
}

func TestNewServer(t *testing.T) {
	h := fixtureHandlers(t)
	require.NotNil(t, NewServer(h.cfg, h.baseDir, "test"))
}
