package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/export"
	"prodflow/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// tickGen identifies the live tick chain. Starting the timer bumps it,
	// so ticks scheduled before the last start are dropped on arrival and
	// only one chain ever advances the countdown.
	tickGen int

	tasks    tasksModel
	goals    goalsModel
	timer    timerModel
	insights insightsModel
	badges   badgesModel

	help   help.Model
	status string
}

func NewApp(t *tracker.Tracker) App {
	h := help.New()
	h.ShowAll = false

	applyTheme(t.Theme())

	status := ""
	if len(t.Tasks()) == 0 && len(t.Goals()) == 0 {
		status = "Welcome to prodflow! 🎯 Let's get started!"
	}

	return App{
		tracker:    t,
		activeView: viewTasks,
		tasks:      newTasksModel(t),
		goals:      newGoalsModel(t),
		timer:      newTimerModel(t),
		insights:   newInsightsModel(t),
		badges:     newBadgesModel(t),
		help:       h,
		status:     status,
	}
}

func (a App) Init() tea.Cmd {
	return nudgeCmd()
}

func nudgeCmd() tea.Cmd {
	return tea.Tick(tracker.NudgeInterval, func(time.Time) tea.Msg {
		return nudgeMsg{}
	})
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.tasks.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.timer.setSize(a.width, contentHeight)
		a.insights.setSize(a.width, contentHeight)
		a.badges.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Theme):
			applyTheme(a.tracker.ToggleTheme())
			a.status = "Theme: " + string(a.tracker.Theme())
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewGoals
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewInsights
			a.insights.refresh()
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewBadges
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 5
			if a.activeView == viewInsights {
				a.insights.refresh()
			}
			return a, nil
		}

	case startTickMsg:
		a.tickGen++
		return a, tickCmd(a.tickGen)

	case nudgeMsg:
		if text, ok := a.tracker.Nudge(); ok {
			a.status = text
		}
		return a, nudgeCmd()

	case timerTickMsg:
		if msg.gen != a.tickGen {
			return a, nil
		}
		a.tracker.TickTimer()
		a.drainEvents()
		if a.tracker.Timer().Running {
			return a, tickCmd(a.tickGen)
		}
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewInsights:
		a.insights, cmd = a.insights.update(msg)
	case viewBadges:
		a.badges, cmd = a.badges.update(msg)
	}
	a.drainEvents()
	return a, cmd
}

// drainEvents surfaces pending core notifications in the status line. The
// terminal bell fires on timer completion and achievement unlocks.
func (a *App) drainEvents() {
	for _, ev := range a.tracker.DrainEvents() {
		a.status = ev.Message
		if ev.Kind == tracker.EventTimerComplete || ev.Kind == tracker.EventAchievementUnlocked {
			a.status += "\a"
		}
	}
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewGoals:
		return a.goals.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTasks:
		content = a.tasks.view()
	case viewGoals:
		content = a.goals.view()
	case viewTimer:
		content = a.timer.view()
	case viewInsights:
		content = a.insights.view()
	case viewBadges:
		content = a.badges.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("prodflow")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator in footer
	timerInfo := ""
	if ts := a.tracker.Timer(); ts.Running {
		timerInfo = successStyle.Render(" ● " + formatClock(ts.Minutes, ts.Seconds))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	tasks := a.tracker.Tasks()
	history := a.tracker.Stats().TasksCompleted
	return func() tea.Msg {
		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("prodflow-export-%s.csv", dateStr))
			if err := export.ToCSV(tasks, history, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("prodflow-export-%s.json", dateStr))
			if err := export.ToJSON(tasks, history, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
