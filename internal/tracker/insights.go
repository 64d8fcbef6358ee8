package tracker

import (
	"fmt"
	"time"
)

const maxInsights = 4

// NudgeInterval is how often the display layer asks for a motivational
// nudge.
const NudgeInterval = 30 * time.Minute

// nudges is the pool the periodic reminder draws from. It is separate from
// the motivational insight pad pool.
var nudges = []string{
	"💪 Keep pushing! You're doing great!",
	"🌟 Every effort counts towards your goals!",
	"🚀 Take a moment to review your progress!",
	"🎯 Focus on one task at a time for best results!",
}

// Nudge draws one motivational reminder. It reports false when no tasks
// exist yet; there is nothing to nudge about.
func (t *Tracker) Nudge() (string, bool) {
	if len(t.tasks) == 0 {
		return "", false
	}
	return nudges[t.rng.Intn(len(nudges))], true
}

// motivational is the fixed pool one entry is drawn from when fewer than
// three insights apply.
var motivational = []Insight{
	{Icon: "🚀", Text: "Every small step forward is progress. You're doing great!"},
	{Icon: "💡", Text: "Break large tasks into smaller chunks for better results."},
	{Icon: "🎯", Text: "Focus on high-priority tasks during your peak energy hours."},
	{Icon: "🌱", Text: "Growth happens outside your comfort zone. Challenge yourself!"},
}

// Insights builds the ordered coaching messages for the current state,
// capped at four. With no tasks at all it short-circuits to a single
// welcome entry.
func (t *Tracker) Insights() []Insight {
	if len(t.tasks) == 0 {
		return []Insight{{
			Icon: "👋",
			Text: "Welcome! Start by adding your first task to begin your productivity journey.",
		}}
	}

	var insights []Insight
	s := t.Summary()
	active := s.TotalTasks - s.CompletedTasks

	switch {
	case s.CompletionRate > 70:
		insights = append(insights, Insight{
			Icon: "🌟",
			Text: fmt.Sprintf("Amazing! You've completed %d%% of your tasks. Keep up the excellent work!", s.CompletionRate),
		})
	case s.CompletionRate > 40:
		insights = append(insights, Insight{
			Icon: "💪",
			Text: fmt.Sprintf("Good progress! %d%% completion rate. You're building momentum!", s.CompletionRate),
		})
	case active > 5:
		insights = append(insights, Insight{
			Icon: "🎯",
			Text: "You have many active tasks. Focus on completing a few high-priority items first!",
		})
	}

	if top, ok := t.TopCategory(); ok && s.CompletedTasks > 3 {
		insights = append(insights, Insight{
			Icon: "📊",
			Text: fmt.Sprintf("You're most productive in %s tasks. Consider scheduling more of what works!", top.Category),
		})
	}

	if hours := t.stats.TotalTime / 3600; hours > 10 {
		insights = append(insights, Insight{
			Icon: "⏱️",
			Text: fmt.Sprintf("You've logged %d hours of focused work. That's dedication!", hours),
		})
	}

	switch {
	case t.stats.Streak >= 7:
		insights = append(insights, Insight{
			Icon: "🔥",
			Text: fmt.Sprintf("%d day streak! You're on fire! Consistency is key to success.", t.stats.Streak),
		})
	case t.stats.Streak >= 3:
		insights = append(insights, Insight{
			Icon: "✨",
			Text: fmt.Sprintf("%d days in a row! Keep the momentum going!", t.stats.Streak),
		})
	}

	if len(insights) < 3 {
		insights = append(insights, motivational[t.rng.Intn(len(motivational))])
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}
