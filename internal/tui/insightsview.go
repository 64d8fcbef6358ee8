package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prodflow/internal/tracker"
)

type insightsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	// insights are cached so the motivational pick stays stable between
	// renders; refresh regenerates them.
	insights []tracker.Insight
	chart    barchart.Model
}

func newInsightsModel(t *tracker.Tracker) insightsModel {
	m := insightsModel{
		tracker: t,
		chart:   barchart.New(60, 10),
	}
	m.refresh()
	return m
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

// refresh regenerates the insight list and redraws the weekly chart.
func (m *insightsModel) refresh() {
	m.insights = m.tracker.Insights()
	m.buildChart()
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.Reset) {
		m.refresh()
	}
	return m, nil
}

func (m *insightsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, dc := range m.tracker.WeekHistogram() {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if dc.Count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: dc.Day.Format("Mon"),
			Values: []barchart.BarValue{
				{Name: dc.Day.Format("2006-01-02"), Value: float64(dc.Count), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m insightsModel) view() string {
	w := m.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Insights"), "  ", m.renderSummary(),
	)

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for _, in := range m.insights {
		rows = append(rows, fmt.Sprintf("  %s %s", in.Icon, normalItemStyle.Render(in.Text)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  Completions, last 7 days"))
	rows = append(rows, m.chart.View())
	rows = append(rows, m.renderBreakdown())
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  r: refresh"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m insightsModel) renderSummary() string {
	s := m.tracker.Summary()
	parts := []string{
		fmt.Sprintf("%d tasks", s.TotalTasks),
		fmt.Sprintf("%d done", s.CompletedTasks),
		fmt.Sprintf("%d%%", s.CompletionRate),
		formatHours(s.TotalTime) + " focused",
		fmt.Sprintf("🔥 %d day streak", s.Streak),
	}
	return mutedStyle.Render(strings.Join(parts, "  ·  "))
}

func (m insightsModel) renderBreakdown() string {
	breakdown := m.tracker.CategoryBreakdown()
	if len(breakdown) == 0 {
		return mutedStyle.Render("  Nothing completed yet")
	}
	var items []string
	for _, cc := range breakdown {
		items = append(items, fmt.Sprintf("%s %s %d", categoryIcon(cc.Category), cc.Category, cc.Count))
	}
	return "  " + strings.Join(items, "  ")
}
