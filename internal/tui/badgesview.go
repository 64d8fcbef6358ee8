package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/tracker"
)

type badgesModel struct {
	tracker *tracker.Tracker
	width   int
	height  int
}

func newBadgesModel(t *tracker.Tracker) badgesModel {
	return badgesModel{tracker: t}
}

func (m *badgesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m badgesModel) update(tea.Msg) (badgesModel, tea.Cmd) {
	return m, nil
}

func (m badgesModel) view() string {
	w := m.width - 4
	badges := m.tracker.Badges()

	unlocked := 0
	for _, b := range badges {
		if b.Unlocked {
			unlocked++
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Badges"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d of %d unlocked", unlocked, len(badges))),
	)

	cardWidth := max(24, (w-6)/2)

	var cards []string
	for _, b := range badges {
		cards = append(cards, renderBadgeCard(b, cardWidth))
	}

	// Two cards per row
	var lines []string
	lines = append(lines, header, "")
	for i := 0; i < len(cards); i += 2 {
		row := cards[i]
		if i+1 < len(cards) {
			row = lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1])
		}
		lines = append(lines, row)
	}

	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func renderBadgeCard(b tracker.Badge, width int) string {
	var name, desc string
	if b.Unlocked {
		name = successStyle.Bold(true).Render(b.Icon + " " + b.Name)
		desc = normalItemStyle.Render(b.Desc)
	} else {
		name = mutedStyle.Render("🔒 " + b.Name)
		desc = mutedStyle.Render(b.Desc)
	}
	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, name, desc),
	)
}
