package tui

import (
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/tracker"
)

// palette holds the colors a theme swaps out.
type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	accent    lipgloss.Color
	muted     lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	errc      lipgloss.Color
	fg        lipgloss.Color
	subtle    lipgloss.Color
	highlight lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#6C63FF"),
	secondary: lipgloss.Color("#2EC4B6"),
	accent:    lipgloss.Color("#FF6B6B"),
	muted:     lipgloss.Color("#666666"),
	success:   lipgloss.Color("#2ECC71"),
	warning:   lipgloss.Color("#F39C12"),
	errc:      lipgloss.Color("#E74C3C"),
	fg:        lipgloss.Color("#C0CAF5"),
	subtle:    lipgloss.Color("#414868"),
	highlight: lipgloss.Color("#7AA2F7"),
}

var lightPalette = palette{
	primary:   lipgloss.Color("#5A51E0"),
	secondary: lipgloss.Color("#0F9488"),
	accent:    lipgloss.Color("#D94A4A"),
	muted:     lipgloss.Color("#8A8A8A"),
	success:   lipgloss.Color("#1E9E55"),
	warning:   lipgloss.Color("#C97E0A"),
	errc:      lipgloss.Color("#C0392B"),
	fg:        lipgloss.Color("#2A2A3C"),
	subtle:    lipgloss.Color("#B8BDD4"),
	highlight: lipgloss.Color("#3D6FD9"),
}

// Styles, rebuilt by applyTheme.
var (
	activeTabStyle    lipgloss.Style
	inactiveTabStyle  lipgloss.Style
	panelStyle        lipgloss.Style
	activePanelStyle  lipgloss.Style
	timerStyle        lipgloss.Style
	timerRunningStyle lipgloss.Style
	titleStyle        lipgloss.Style
	accentStyle       lipgloss.Style
	successStyle      lipgloss.Style
	warningStyle      lipgloss.Style
	errorStyle        lipgloss.Style
	mutedStyle        lipgloss.Style
	highlightStyle    lipgloss.Style
	headerStyle       lipgloss.Style
	footerStyle       lipgloss.Style
	selectedItemStyle lipgloss.Style
	normalItemStyle   lipgloss.Style

	colorPrimary lipgloss.Color
	colorSubtle  lipgloss.Color
)

func init() {
	applyTheme(tracker.ThemeDark)
}

// applyTheme rebuilds the package style set from the given theme's palette.
func applyTheme(theme tracker.Theme) {
	p := darkPalette
	if theme == tracker.ThemeLight {
		p = lightPalette
	}

	colorPrimary = p.primary
	colorSubtle = p.subtle

	activeTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.primary).
		Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.subtle).
		Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.primary).
		Padding(1, 2)

	timerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.success).
		Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.fg)

	accentStyle = lipgloss.NewStyle().
		Foreground(p.accent)

	successStyle = lipgloss.NewStyle().
		Foreground(p.success)

	warningStyle = lipgloss.NewStyle().
		Foreground(p.warning)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.errc)

	mutedStyle = lipgloss.NewStyle().
		Foreground(p.muted)

	highlightStyle = lipgloss.NewStyle().
		Foreground(p.highlight)

	headerStyle = lipgloss.NewStyle().
		Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	normalItemStyle = lipgloss.NewStyle().
		Foreground(p.fg)
}
