// Package render formats sessions, session details, search results,
// and statistics for the terminal. Two implementations share one
// contract: a rich renderer built on lipgloss and a plain-text
// fallback, selected at startup by a capability flag.
package render

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/kmabeeTT/claude-code-history/internal/ops"
	"github.com/kmabeeTT/claude-code-history/internal/session"
)

// Column display widths, shared by both renderers.
const (
	numWidth     = 4
	dateWidth    = 16
	summaryWidth = 60
	countWidth   = 8
	branchWidth  = 54
	previewWidth = 60
)

// Renderer renders browse output. maxLen in SessionDetail is the
// message truncation length in runes; zero or negative means
// unlimited.
type Renderer interface {
	SessionTable(w io.Writer, sessions []session.Session, title string)
	SessionDetail(w io.Writer, s *session.Session, messages []session.Message, maxLen int)
	SearchResults(w io.Writer, results []ops.GrepResult, query string)
	Stats(w io.Writer, stats *ops.StatsOutput)
}

// New returns the rich renderer when rich is true, otherwise the
// plain-text fallback.
func New(rich bool) Renderer {
	if rich {
		return &Rich{}
	}
	return &Plain{}
}

// clip truncates s to the given display width, appending "..." when
// clipped. Widths are terminal cells, so wide runes count double.
func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// pad clips and right-pads s to exactly width display cells.
func pad(s string, width int) string {
	return runewidth.FillRight(clip(s, width), width)
}

// truncateMessage applies the detail-view length cap. The marker names
// the original rune count, matching what a reader loses.
func truncateMessage(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) +
		fmt.Sprintf("\n\n... (message truncated, %d total chars)", len(runes))
}

// summaryText substitutes "No summary" for an empty summary.
func summaryText(s *session.Session) string {
	if s.Summary == "" {
		return "No summary"
	}
	return s.Summary
}

// summaryCell prefixes unindexed sessions with marker and clips to the
// summary column width.
func summaryCell(s *session.Session, marker string) string {
	summary := summaryText(s)
	if s.IsUnindexed {
		summary = marker + summary
	}
	return clip(summary, summaryWidth)
}

// countUnindexed returns how many sessions are unindexed.
func countUnindexed(sessions []session.Session) int {
	n := 0
	for i := range sessions {
		if sessions[i].IsUnindexed {
			n++
		}
	}
	return n
}
