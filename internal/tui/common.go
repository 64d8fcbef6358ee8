package tui

import (
	"fmt"

	"prodflow/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewGoals
	viewTimer
	viewInsights
	viewBadges
)

var viewNames = []string{"Tasks", "Goals", "Timer", "Insights", "Badges"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// timerTickMsg drives the countdown. gen identifies the tick chain it
// belongs to; a chain started before the last pause/reset carries a stale
// gen and is dropped, so at most one chain ever feeds the timer.
type timerTickMsg struct {
	gen int
}

// startTickMsg asks the root model to begin a fresh tick chain.
type startTickMsg struct{}

// nudgeMsg fires on the long motivational-reminder interval. One chain is
// scheduled at startup and reschedules itself forever.
type nudgeMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatClock(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func categoryIcon(c tracker.Category) string {
	switch c {
	case tracker.CategoryWork:
		return "💼"
	case tracker.CategoryPersonal:
		return "👤"
	case tracker.CategoryHealth:
		return "💪"
	case tracker.CategoryLearning:
		return "📚"
	default:
		return "📌"
	}
}

func priorityIcon(p tracker.Priority) string {
	switch p {
	case tracker.PriorityHigh:
		return "🔴"
	case tracker.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

func formatHours(secs int64) string {
	h := float64(secs) / 3600
	return fmt.Sprintf("%.1fh", h)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
