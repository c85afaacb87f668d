package render

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primary   = lipgloss.Color("#7C3AED")
	secondary = lipgloss.Color("#10B981")
	warning   = lipgloss.Color("#F59E0B")
	muted     = lipgloss.Color("#6B7280")
	cyan      = lipgloss.Color("#06B6D4")

	// Table
	titleStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(muted)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true).
			Padding(0, 1)

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	legendStyle = lipgloss.NewStyle().
			Foreground(muted)

	// Detail view
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	metaPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cyan).
			Padding(0, 1)

	metaKeyStyle = lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true)

	userLabelStyle = lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true)

	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(primary).
				Bold(true)

	// Search
	queryStyle = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(warning)
)

// unindexedMark stays unstyled so cell clipping math sees its real
// display width.
const unindexedMark = "●"
