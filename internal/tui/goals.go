package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/tracker"
)

const progressStep = 10

type goalsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form

	formTitle    *string
	formDeadline *string
	formType     *string
}

func newGoalsModel(t *tracker.Tracker) goalsModel {
	title, deadline, gtype := "", "", string(tracker.GoalShortTerm)
	return goalsModel{
		tracker:      t,
		formTitle:    &title,
		formDeadline: &deadline,
		formType:     &gtype,
	}
}

func (m *goalsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.tracker.FilteredGoals()

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Left):
		m.tracker.SetGoalTab(tracker.GoalShortTerm)
		m.cursor = 0
	case key.Matches(keyMsg, keys.Right):
		m.tracker.SetGoalTab(tracker.GoalLongTerm)
		m.cursor = 0
	case key.Matches(keyMsg, keys.More):
		if m.cursor < len(visible) {
			g := visible[m.cursor]
			m.tracker.UpdateGoalProgress(g.ID, g.Progress+progressStep)
		}
	case key.Matches(keyMsg, keys.Less):
		if m.cursor < len(visible) {
			g := visible[m.cursor]
			m.tracker.UpdateGoalProgress(g.ID, g.Progress-progressStep)
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(visible) {
			m.tracker.DeleteGoal(visible[m.cursor].ID)
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.New):
		return m.showNewGoalForm()
	}
	return m, nil
}

func (m *goalsModel) clampCursor() {
	n := len(m.tracker.FilteredGoals())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m goalsModel) showNewGoalForm() (goalsModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formDeadline = ""
	*m.formType = string(m.tracker.GoalTab())

	typeOptions := []huh.Option[string]{
		huh.NewOption("Short-term", string(tracker.GoalShortTerm)),
		huh.NewOption("Long-term", string(tracker.GoalLongTerm)),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal Title").Value(m.formTitle),
			huh.NewInput().Title("Deadline (YYYY-MM-DD, optional)").Value(m.formDeadline),
			huh.NewSelect[string]().Title("Type").Options(typeOptions...).Value(m.formType),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false

		var deadline *time.Time
		if s := strings.TrimSpace(*m.formDeadline); s != "" {
			d, err := time.ParseInLocation("2006-01-02", s, time.Local)
			if err != nil {
				return m, func() tea.Msg {
					return statusMsg{text: "Invalid deadline, expected YYYY-MM-DD", isError: true}
				}
			}
			deadline = &d
		}

		err := m.tracker.AddGoal(*m.formTitle, deadline, tracker.GoalType(*m.formType))
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Goal title must not be empty", isError: true}
			}
		}
		m.cursor = 0
		return m, nil
	}

	return m, cmd
}

func (m goalsModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Goal")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4

	shortTab := inactiveTabStyle.Render("Short-term")
	longTab := inactiveTabStyle.Render("Long-term")
	if m.tracker.GoalTab() == tracker.GoalShortTerm {
		shortTab = activeTabStyle.Render("Short-term")
	} else {
		longTab = activeTabStyle.Render("Long-term")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Goals"), "  ", shortTab, longTab,
	)

	visible := m.tracker.FilteredGoals()
	if len(visible) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No goals on this tab. Press n to set one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, g := range visible {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		status := renderProgressBar(g.Progress)
		if g.Completed {
			status = successStyle.Render("🎊 achieved")
		}

		deadline := ""
		if g.Deadline != nil {
			deadline = mutedStyle.Render("  due " + g.Deadline.Format("Jan 02, 2006"))
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s", cursor, g.Title))+deadline)
		rows = append(rows, "    "+status)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  +/-: progress  d: delete  ←/→: tabs"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// renderProgressBar draws a 20-cell bar with the percent alongside.
func renderProgressBar(progress int) string {
	filled := progress / 5
	bar := highlightStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", 20-filled))
	return fmt.Sprintf("%s %3d%%", bar, progress)
}
