package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/tracker"
)

var timerPresets = []int{25, 15, 5}

type timerModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	presetIdx int
}

func newTimerModel(t *tracker.Tracker) timerModel {
	return timerModel{tracker: t}
}

func (m *timerModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Start):
		if m.tracker.StartTimer() {
			return m, func() tea.Msg { return startTickMsg{} }
		}
	case key.Matches(keyMsg, keys.Pause):
		m.tracker.PauseTimer()
	case key.Matches(keyMsg, keys.Reset):
		m.tracker.ResetTimer(timerPresets[m.presetIdx])
	case key.Matches(keyMsg, keys.Preset):
		m.presetIdx = (m.presetIdx + 1) % len(timerPresets)
		m.tracker.ResetTimer(timerPresets[m.presetIdx])
	}
	return m, nil
}

func (m timerModel) view() string {
	w := m.width - 4
	ts := m.tracker.Timer()

	title := titleStyle.Render("Focus Timer")

	clock := formatClock(ts.Minutes, ts.Seconds)
	var timeDisplay, stateLabel string
	if ts.Running {
		timeDisplay = timerRunningStyle.Width(w - 6).Render(clock)
		stateLabel = successStyle.Bold(true).Render("FOCUSING")
	} else {
		timeDisplay = timerStyle.Width(w - 6).Render(clock)
		stateLabel = mutedStyle.Render("Paused. Press s to focus.")
	}

	presets := m.renderPresets()

	focusTotal := mutedStyle.Render(
		fmt.Sprintf("Total focus time: %s", formatHours(m.tracker.Stats().TotalTime)),
	)

	var controls string
	if ts.Running {
		controls = mutedStyle.Render("space: pause  r: reset")
	} else {
		controls = mutedStyle.Render("s: start  r: reset  p: preset")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		stateLabel,
		"",
		presets,
		focusTotal,
		"",
		controls,
	)

	return panelStyle.Width(w).Render(content)
}

func (m timerModel) renderPresets() string {
	var parts []string
	for i, p := range timerPresets {
		label := fmt.Sprintf("%dm", p)
		if i == m.presetIdx {
			parts = append(parts, highlightStyle.Bold(true).Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}
