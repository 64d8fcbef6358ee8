package tracker

import (
	"math"
	"time"
)

// Summary is the aggregate snapshot shown in the stats header.
type Summary struct {
	TotalTasks     int
	CompletedTasks int
	CompletionRate int // rounded percent, 0 when no tasks exist
	TotalTime      int64
	TotalHours     int
	Streak         int
}

// CategoryCount is one bucket of the completed-task category breakdown.
type CategoryCount struct {
	Category Category
	Count    int
}

// DayCount is one calendar day of the 7-day completion histogram.
type DayCount struct {
	Day   time.Time
	Count int
}

func (t *Tracker) Summary() Summary {
	completed := 0
	for _, task := range t.tasks {
		if task.Completed {
			completed++
		}
	}
	rate := 0
	if len(t.tasks) > 0 {
		rate = int(math.Round(float64(completed) / float64(len(t.tasks)) * 100))
	}
	return Summary{
		TotalTasks:     len(t.tasks),
		CompletedTasks: completed,
		CompletionRate: rate,
		TotalTime:      t.stats.TotalTime,
		TotalHours:     int(t.stats.TotalTime / 3600),
		Streak:         t.stats.Streak,
	}
}

// CategoryBreakdown counts completed tasks per category, ordered by first
// encounter while walking the completed tasks. That order is what breaks
// ties in TopCategory, so it must stay stable rather than alphabetical.
func (t *Tracker) CategoryBreakdown() []CategoryCount {
	counts := make(map[Category]int)
	var order []Category
	for _, task := range t.tasks {
		if !task.Completed {
			continue
		}
		if _, seen := counts[task.Category]; !seen {
			order = append(order, task.Category)
		}
		counts[task.Category]++
	}
	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}

// TopCategory returns the category with the most completed tasks, or false
// when nothing has been completed.
func (t *Tracker) TopCategory() (CategoryCount, bool) {
	breakdown := t.CategoryBreakdown()
	if len(breakdown) == 0 {
		return CategoryCount{}, false
	}
	top := breakdown[0]
	for _, cc := range breakdown[1:] {
		if cc.Count > top.Count {
			top = cc
		}
	}
	return top, true
}

// WeekHistogram buckets completion records into the 7 calendar days ending
// today, oldest first.
func (t *Tracker) WeekHistogram() []DayCount {
	today := dayOf(t.now())
	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count := 0
		for _, c := range t.stats.TasksCompleted {
			if sameDay(c.Date, day) {
				count++
			}
		}
		out = append(out, DayCount{Day: day, Count: count})
	}
	return out
}

// updateStreak advances the consecutive-day counter when a completion
// landed today. A lapsed streak is not zeroed by the passage of time alone;
// it resets to 1 only when the next completion arrives after a gap. That
// lazy decay matches the persisted data users already have.
func (t *Tracker) updateStreak() {
	now := t.now()
	if !t.completedOn(now) {
		return
	}
	if t.stats.LastActiveDate != nil && sameDay(*t.stats.LastActiveDate, now) {
		return
	}
	yesterday := now.AddDate(0, 0, -1)
	if t.stats.LastActiveDate != nil && sameDay(*t.stats.LastActiveDate, yesterday) {
		t.stats.Streak++
	} else {
		t.stats.Streak = 1
	}
	t.stats.LastActiveDate = &now
	t.saveStats()
}

// completedOn reports whether any completion record falls on ref's
// calendar day.
func (t *Tracker) completedOn(ref time.Time) bool {
	for _, c := range t.stats.TasksCompleted {
		if sameDay(c.Date, ref) {
			return true
		}
	}
	return false
}

// dayOf truncates to local midnight.
func dayOf(ts time.Time) time.Time {
	y, m, d := ts.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
