package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kmabeeTT/claude-code-history/internal/ops"
	"github.com/kmabeeTT/claude-code-history/internal/session"
)

// Plain renders fixed-width text without any terminal styling.
type Plain struct{}

const plainRuleWidth = numWidth + dateWidth + summaryWidth + countWidth + branchWidth + 4

// SessionTable renders the session listing, newest first.
func (p *Plain) SessionTable(w io.Writer, sessions []session.Session, title string) {
	sorted := session.SortedByModifiedDesc(sessions)

	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", plainRuleWidth))
	fmt.Fprintf(w, "%s %s %s %s %s\n",
		pad("#", numWidth), pad("Date", dateWidth), pad("Summary", summaryWidth),
		pad("Msgs", countWidth), pad("Branch", branchWidth))
	fmt.Fprintln(w, strings.Repeat("-", plainRuleWidth))

	for i := range sorted {
		s := &sorted[i]
		date := s.Modified
		if date == "" {
			date = s.Created
		}
		fmt.Fprintf(w, "%s %s %s %s %s\n",
			pad(strconv.Itoa(i+1), numWidth),
			pad(ops.FormatDate(date), dateWidth),
			pad(summaryCell(s, "* "), summaryWidth),
			pad(strconv.Itoa(s.MessageCount), countWidth),
			pad(s.GitBranch, branchWidth))
	}

	fmt.Fprintf(w, "\nTotal sessions: %d\n", len(sorted))

	if n := countUnindexed(sorted); n > 0 {
		fmt.Fprintf(w, "* = active/recent session (not yet indexed): %d\n", n)
	}
}

// SessionDetail renders the metadata block followed by one block per
// message.
func (p *Plain) SessionDetail(w io.Writer, s *session.Session, messages []session.Message, maxLen int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 100))
	fmt.Fprintf(w, "Summary: %s\n", summaryText(s))
	fmt.Fprintf(w, "Created: %s\n", ops.FormatDate(s.Created))
	fmt.Fprintf(w, "Modified: %s\n", ops.FormatDate(s.Modified))
	fmt.Fprintf(w, "Messages: %d\n", s.MessageCount)
	fmt.Fprintf(w, "Branch: %s\n", s.GitBranch)
	fmt.Fprintf(w, "Project: %s\n", s.ProjectPath)
	fmt.Fprintf(w, "Session ID: %s\n", s.SessionID)
	fmt.Fprintln(w, strings.Repeat("=", 100))

	for i := range messages {
		msg := &messages[i]
		fmt.Fprintln(w, "\n"+strings.Repeat("-", 100))
		fmt.Fprintf(w, "%s - %s\n", strings.ToUpper(msg.Role()), ops.FormatDate(msg.Timestamp))
		fmt.Fprintln(w, strings.Repeat("-", 100))
		fmt.Fprintln(w, truncateMessage(session.ExtractText(msg), maxLen))
	}
}

// SearchResults renders the content-search result table.
func (p *Plain) SearchResults(w io.Writer, results []ops.GrepResult, query string) {
	fmt.Fprintf(w, "\nSearch results for: %s\n", query)
	fmt.Fprintln(w, strings.Repeat("=", plainRuleWidth))

	if len(results) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	fmt.Fprintf(w, "Found %d sessions with matches\n\n", len(results))
	fmt.Fprintf(w, "%s %s %s %s\n",
		pad("#", numWidth), pad("Session", summaryWidth),
		pad("Matches", countWidth), pad("Preview", previewWidth))
	fmt.Fprintln(w, strings.Repeat("-", plainRuleWidth))

	for i, result := range results {
		fmt.Fprintf(w, "%s %s %s %s\n",
			pad(strconv.Itoa(i+1), numWidth),
			pad(summaryText(&result.Session), summaryWidth),
			pad(strconv.Itoa(result.MatchCount), countWidth),
			pad(result.Matches[0].Preview, previewWidth))
	}
}

// Stats renders the aggregate statistics block.
func (p *Plain) Stats(w io.Writer, stats *ops.StatsOutput) {
	fmt.Fprintln(w, "\nClaude Code History Statistics")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total Sessions: %d\n", stats.TotalSessions)
	fmt.Fprintf(w, "Total Messages: %d\n", stats.TotalMessages)
	fmt.Fprintf(w, "Average Messages per Session: %.1f\n", stats.AvgMessages)
	fmt.Fprintf(w, "Unique Branches: %d\n", stats.UniqueBranches)
	fmt.Fprintf(w, "Unique Projects: %d\n", stats.UniqueProjects)
}
