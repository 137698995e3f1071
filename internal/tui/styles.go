package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/timetrack/internal/store"
)

var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#8B83FF"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#1B9A8F", Dark: "#3DD6C6"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#D9480F", Dark: "#FF8A5B"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6B6F80"}
	colorSuccess   = lipgloss.AdaptiveColor{Light: "#2B8A3E", Dark: "#51CF66"}
	colorWarning   = lipgloss.AdaptiveColor{Light: "#E67700", Dark: "#FCC419"}
	colorError     = lipgloss.AdaptiveColor{Light: "#C92A2A", Dark: "#FF6B6B"}
	colorFg        = lipgloss.AdaptiveColor{Light: "#1F2335", Dark: "#C8D3F5"}
	colorSubtle    = lipgloss.AdaptiveColor{Light: "#C5C8D6", Dark: "#3B4261"}
	colorHighlight = lipgloss.AdaptiveColor{Light: "#1971C2", Dark: "#74C0FC"}
)

var (
	baseStyle = lipgloss.NewStyle()

	titleStyle     = baseStyle.Bold(true).Foreground(colorFg)
	mutedStyle     = baseStyle.Foreground(colorMuted)
	accentStyle    = baseStyle.Foreground(colorAccent)
	successStyle   = baseStyle.Foreground(colorSuccess)
	warningStyle   = baseStyle.Foreground(colorWarning)
	errorStyle     = baseStyle.Foreground(colorError)
	highlightStyle = baseStyle.Foreground(colorHighlight)
	timerStyle     = baseStyle.Bold(true).Foreground(colorPrimary).Align(lipgloss.Center)

	normalItemStyle   = baseStyle.Foreground(colorFg)
	selectedItemStyle = baseStyle.Bold(true).Foreground(colorPrimary)
	pendingMoveStyle  = baseStyle.Italic(true).Foreground(colorWarning)

	inactiveTabStyle = baseStyle.Padding(0, 2).Foreground(colorMuted)
	activeTabStyle   = inactiveTabStyle.Bold(true).
				Foreground(colorPrimary).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(colorPrimary)

	// Focused panels only differ by border color.
	panelStyle       = baseStyle.Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Padding(0, 1)
	activePanelStyle = panelStyle.BorderForeground(colorWarning)

	headerStyle = baseStyle.Padding(0, 1)
	footerStyle = mutedStyle.Padding(0, 1)
)

var statusStyles = map[store.ActivityStatus]lipgloss.Style{
	store.StatusOngoing:  highlightStyle,
	store.StatusOverwork: errorStyle,
	store.StatusComplete: successStyle,
}

func statusStyle(s store.ActivityStatus) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return normalItemStyle
}
