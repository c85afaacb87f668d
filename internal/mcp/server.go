// Package mcp exposes the history browser as MCP tools over stdio, so
// an agent can search its own past sessions.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/kmabeeTT/claude-code-history/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler
// factories.
var toolRegistry = map[string]toolEntry{
	"history_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"history_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"history_grep": {
		def:     grepToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGrep },
	},
	"history_view": {
		def:     viewToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleView },
	},
	"history_stats": {
		def:     statsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
	"history_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
}

// Tool definitions

var listToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List Claude Code sessions across all projects, newest first."),
	mcp.WithString("branch", mcp.Description("Filter by git branch substring")),
	mcp.WithString("since", mcp.Description("Only sessions modified on or after this date (YYYY-MM-DD)")),
	mcp.WithString("until", mcp.Description("Only sessions modified on or before this date (YYYY-MM-DD)")),
	mcp.WithNumber("limit", mcp.Description("Keep only the newest N sessions")),
)

var searchToolDef = mcp.NewTool("history_search",
	mcp.WithDescription("Search session summaries, first prompts, and branches (case-insensitive substring)."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
	mcp.WithNumber("limit", mcp.Description("Maximum results to return")),
)

var grepToolDef = mcp.NewTool("history_grep",
	mcp.WithDescription("Search the full message content of every session."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
	mcp.WithBoolean("case_sensitive", mcp.Description("Match case exactly (default: false)")),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return")),
)

var viewToolDef = mcp.NewTool("history_view",
	mcp.WithDescription("View one session's metadata and messages, by list position or session ID."),
	mcp.WithString("target", mcp.Required(), mcp.Description("1-based session number from history_list, or a session ID")),
	mcp.WithNumber("max_message_length", mcp.Description("Truncate message bodies to this many characters; 0 for no truncation")),
)

var statsToolDef = mcp.NewTool("history_stats",
	mcp.WithDescription("Aggregate statistics over all sessions."),
)

var exportToolDef = mcp.NewTool("history_export",
	mcp.WithDescription("Export one session's transcript to a markdown or HTML file."),
	mcp.WithString("target", mcp.Required(), mcp.Description("1-based session number or session ID")),
	mcp.WithString("path", mcp.Description("Destination file path (default under the application base dir)")),
	mcp.WithString("format", mcp.Description("markdown or html (default: markdown)")),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns the unknown names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the history tools registered.
// Tools listed in cfg.DisabledTools are excluded.
func NewServer(cfg *config.Config, baseDir, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"claude-history",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(cfg, baseDir)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Warn().Str("tool", name).Msg("unknown tool in disabled_tools")
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(cfg *config.Config, baseDir, version string) error {
	return server.ServeStdio(NewServer(cfg, baseDir, version))
}
