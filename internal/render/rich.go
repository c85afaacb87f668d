package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kmabeeTT/claude-code-history/internal/ops"
	"github.com/kmabeeTT/claude-code-history/internal/session"
)

// Rich renders with lipgloss tables and panels.
type Rich struct{}

func (r *Rich) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// SessionTable renders the session listing, newest first.
func (r *Rich) SessionTable(w io.Writer, sessions []session.Session, title string) {
	sorted := session.SortedByModifiedDesc(sessions)

	t := r.newTable("#", "Date", "Summary", "Messages", "Branch")
	for i := range sorted {
		s := &sorted[i]
		date := s.Modified
		if date == "" {
			date = s.Created
		}
		t.Row(
			strconv.Itoa(i+1),
			ops.FormatDate(date),
			summaryCell(s, unindexedMark+" "),
			strconv.Itoa(s.MessageCount),
			clip(s.GitBranch, branchWidth),
		)
	}

	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("Total sessions: %d", len(sorted))))

	if n := countUnindexed(sorted); n > 0 {
		fmt.Fprintln(w, legendStyle.Render(
			fmt.Sprintf("%s = active/recent session (not yet indexed): %d", unindexedMark, n)))
	}
}

// SessionDetail renders the metadata panel followed by one panel per
// message.
func (r *Rich) SessionDetail(w io.Writer, s *session.Session, messages []session.Message, maxLen int) {
	meta := strings.Join([]string{
		metaKeyStyle.Render("Summary:") + " " + summaryText(s),
		metaKeyStyle.Render("Created:") + " " + ops.FormatDate(s.Created),
		metaKeyStyle.Render("Modified:") + " " + ops.FormatDate(s.Modified),
		metaKeyStyle.Render("Messages:") + " " + strconv.Itoa(s.MessageCount),
		metaKeyStyle.Render("Branch:") + " " + s.GitBranch,
		metaKeyStyle.Render("Project:") + " " + s.ProjectPath,
		metaKeyStyle.Render("Session ID:") + " " + s.SessionID,
	}, "\n")

	fmt.Fprintln(w, titleStyle.Render("Session Details"))
	fmt.Fprintln(w, metaPanelStyle.Render(meta))
	fmt.Fprintln(w)

	for i := range messages {
		msg := &messages[i]
		label := assistantLabelStyle
		if msg.Role() == "user" {
			label = userLabelStyle
		}
		header := label.Render(strings.ToUpper(msg.Role())) + " " +
			legendStyle.Render(ops.FormatDate(msg.Timestamp))

		content := truncateMessage(session.ExtractText(msg), maxLen)
		fmt.Fprintln(w, header)
		fmt.Fprintln(w, panelStyle.Render(content))
		fmt.Fprintln(w)
	}
}

// SearchResults renders the content-search result table.
func (r *Rich) SearchResults(w io.Writer, results []ops.GrepResult, query string) {
	fmt.Fprintln(w, "Search results for: "+queryStyle.Render(query))

	if len(results) == 0 {
		fmt.Fprintln(w, noticeStyle.Render("No matches found."))
		return
	}

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Found %d sessions with matches", len(results))))

	t := r.newTable("#", "Session", "Matches", "Preview")
	for i, result := range results {
		t.Row(
			strconv.Itoa(i+1),
			clip(summaryText(&result.Session), summaryWidth),
			strconv.Itoa(result.MatchCount),
			clip(result.Matches[0].Preview, previewWidth),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// Stats renders the aggregate statistics panel.
func (r *Rich) Stats(w io.Writer, stats *ops.StatsOutput) {
	body := strings.Join([]string{
		metaKeyStyle.Render("Total Sessions:") + " " + strconv.Itoa(stats.TotalSessions),
		metaKeyStyle.Render("Total Messages:") + " " + strconv.Itoa(stats.TotalMessages),
		metaKeyStyle.Render("Average Messages per Session:") + " " + fmt.Sprintf("%.1f", stats.AvgMessages),
		metaKeyStyle.Render("Unique Branches:") + " " + strconv.Itoa(stats.UniqueBranches),
		metaKeyStyle.Render("Unique Projects:") + " " + strconv.Itoa(stats.UniqueProjects),
	}, "\n")

	fmt.Fprintln(w, titleStyle.Render("Claude Code History Statistics"))
	fmt.Fprintln(w, metaPanelStyle.Render(body))
}
