package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kmabeeTT/claude-code-history/internal/config"
	"github.com/kmabeeTT/claude-code-history/internal/errors"
	"github.com/kmabeeTT/claude-code-history/internal/ops"
	"github.com/kmabeeTT/claude-code-history/internal/session"
	"github.com/kmabeeTT/claude-code-history/internal/store"
)

// Handlers holds dependencies for MCP tool handlers. Each call takes a
// fresh store snapshot, matching the CLI's per-invocation reads.
type Handlers struct {
	cfg     *config.Config
	baseDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(cfg *config.Config, baseDir string) *Handlers {
	return &Handlers{cfg: cfg, baseDir: baseDir}
}

func (h *Handlers) store() *store.Store {
	return store.New(h.cfg)
}

// Request types for each tool

// ListRequest represents the arguments for history_list.
type ListRequest struct {
	Branch string `json:"branch,omitempty"`
	Since  string `json:"since,omitempty"`
	Until  string `json:"until,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// SearchRequest represents the arguments for history_search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// GrepRequest represents the arguments for history_grep.
type GrepRequest struct {
	Query         string `json:"query"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
	Limit         int    `json:"limit,omitempty"`
}

// ViewRequest represents the arguments for history_view.
type ViewRequest struct {
	Target           string `json:"target"`
	MaxMessageLength *int   `json:"max_message_length,omitempty"`
}

// ExportRequest represents the arguments for history_export.
type ExportRequest struct {
	Target string `json:"target"`
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
}

// ViewMessage is one message in a history_view response, with content
// already flattened to text.
type ViewMessage struct {
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// ViewResponse is the history_view response payload.
type ViewResponse struct {
	Session  session.Session `json:"session"`
	Messages []ViewMessage   `json:"messages"`
}

// Handler implementations

// HandleList handles the history_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.store(), ops.ListInput{
		Branch: input.Branch,
		Since:  input.Since,
		Until:  input.Until,
		Limit:  input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	// The CLI table sorts for display; sort here too so positions line
	// up with history_view targets.
	result.Sessions = session.SortedByModifiedDesc(result.Sessions)
	return successResult(result)
}

// HandleSearch handles the history_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(h.store(), ops.SearchInput{
		Query: input.Query,
		Limit: input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleGrep handles the history_grep tool call.
func (h *Handlers) HandleGrep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GrepRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Grep(h.store(), ops.GrepInput{
		Query:         input.Query,
		CaseSensitive: input.CaseSensitive,
		Limit:         input.Limit,
		Context:       h.cfg.PreviewContext,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleView handles the history_view tool call.
func (h *Handlers) HandleView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ViewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.View(h.store(), ops.ViewInput{Target: input.Target})
	if err != nil {
		return errorResult(err), nil
	}

	maxLen := h.cfg.MaxMessageLength
	if input.MaxMessageLength != nil {
		maxLen = *input.MaxMessageLength
	}

	resp := ViewResponse{Session: result.Session}
	for i := range result.Messages {
		text := session.ExtractText(&result.Messages[i])
		if maxLen > 0 {
			if runes := []rune(text); len(runes) > maxLen {
				text = string(runes[:maxLen])
			}
		}
		resp.Messages = append(resp.Messages, ViewMessage{
			Role:      result.Messages[i].Role(),
			Timestamp: result.Messages[i].Timestamp,
			Text:      text,
		})
	}

	return successResult(resp)
}

// HandleStats handles the history_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(ops.Stats(h.store()))
}

// HandleExport handles the history_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.store(), ops.ExportInput{
		Target:  input.Target,
		Path:    input.Path,
		Format:  ops.ExportFormat(input.Format),
		BaseDir: h.baseDir,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// decode maps a request's loosely shaped argument object onto T by
// round-tripping it through JSON, so each handler works with a typed
// request struct instead of digging through map[string]any.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var out T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return out, fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode arguments: %w", err)
	}
	return out, nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if hErr, ok := err.(*errors.HistoryError); ok {
		errorObj := map[string]any{
			"code":    hErr.Code,
			"message": hErr.Message,
		}
		// Keep internal error details out of tool output
		if hErr.Code != errors.ErrInternal && hErr.Details != nil {
			errorObj["details"] = hErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return mcp.NewToolResultError(string(content))
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
