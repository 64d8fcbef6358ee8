package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/tracker"
)

type tasksModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle    *string
	formCategory *string
	formPriority *string
}

func newTasksModel(t *tracker.Tracker) tasksModel {
	title, cat, prio := "", string(tracker.CategoryWork), string(tracker.PriorityMedium)
	return tasksModel{
		tracker:      t,
		formTitle:    &title,
		formCategory: &cat,
		formPriority: &prio,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	visible := m.tracker.FilteredTasks()

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Enter):
		if m.cursor < len(visible) {
			m.tracker.ToggleTask(visible[m.cursor].ID)
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(visible) {
			m.tracker.DeleteTask(visible[m.cursor].ID)
			m.clampCursor()
		}
	case key.Matches(keyMsg, keys.Filter):
		m.cycleFilter()
		m.cursor = 0
	case key.Matches(keyMsg, keys.New):
		return m.showNewTaskForm()
	}
	return m, nil
}

func (m *tasksModel) clampCursor() {
	n := len(m.tracker.FilteredTasks())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *tasksModel) cycleFilter() {
	switch m.tracker.Filter() {
	case tracker.FilterAll:
		m.tracker.SetFilter(tracker.FilterActive)
	case tracker.FilterActive:
		m.tracker.SetFilter(tracker.FilterCompleted)
	default:
		m.tracker.SetFilter(tracker.FilterAll)
	}
}

func (m tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formCategory = string(tracker.CategoryWork)
	*m.formPriority = string(tracker.PriorityMedium)

	catOptions := make([]huh.Option[string], len(tracker.Categories))
	for i, c := range tracker.Categories {
		catOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", categoryIcon(c), c), string(c))
	}
	prioOptions := make([]huh.Option[string], len(tracker.Priorities))
	for i, p := range tracker.Priorities {
		prioOptions[i] = huh.NewOption(fmt.Sprintf("%s %s", priorityIcon(p), p), string(p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task Title").Value(m.formTitle),
			huh.NewSelect[string]().Title("Category").Options(catOptions...).Value(m.formCategory),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(m.formPriority),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		err := m.tracker.AddTask(*m.formTitle,
			tracker.Category(*m.formCategory),
			tracker.Priority(*m.formPriority))
		if errors.Is(err, tracker.ErrEmptyTitle) {
			return m, func() tea.Msg {
				return statusMsg{text: "Task title must not be empty", isError: true}
			}
		}
		m.cursor = 0
		return m, nil
	}

	return m, cmd
}

func (m tasksModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}

	w := m.width - 4
	visible := m.tracker.FilteredTasks()

	title := titleStyle.Render("Tasks")
	filterLabel := mutedStyle.Render(fmt.Sprintf("  filter: %s", m.tracker.Filter()))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, title, filterLabel)

	if len(visible) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("No tasks here. Press n to add one, f to change the filter."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, task := range visible {
		check := "○"
		if task.Completed {
			check = successStyle.Render("✓")
		}
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s%s %s %s %s", cursor, check, priorityIcon(task.Priority), categoryIcon(task.Category), task.Title)
		if task.Completed {
			rows = append(rows, mutedStyle.Render(line))
		} else {
			rows = append(rows, style.Render(line))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: toggle  d: delete  f: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
