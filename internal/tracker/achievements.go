package tracker

import "fmt"

type achievementRule struct {
	id   string
	name string
	icon string
	desc string
	met  func(*Tracker) bool
}

// achievementRules is evaluated in table order; a single mutation can
// unlock several at once (crossing one totalTime threshold can satisfy
// both time rules in the same pass).
var achievementRules = []achievementRule{
	{
		id: "first-task", name: "First Steps", icon: "🎯", desc: "Create your first task",
		met: func(t *Tracker) bool { return len(t.tasks) >= 1 },
	},
	{
		id: "task-master", name: "Task Master", icon: "⭐", desc: "Complete 10 tasks",
		met: func(t *Tracker) bool { return t.Summary().CompletedTasks >= 10 },
	},
	{
		id: "week-warrior", name: "Week Warrior", icon: "🔥", desc: "Maintain 7-day streak",
		met: func(t *Tracker) bool { return t.stats.Streak >= 7 },
	},
	{
		id: "time-lord", name: "Time Lord", icon: "⏰", desc: "Log 10 hours",
		met: func(t *Tracker) bool { return t.stats.TotalTime >= 36000 },
	},
	{
		id: "goal-getter", name: "Goal Getter", icon: "🎊", desc: "Achieve 3 goals",
		met: func(t *Tracker) bool {
			n := 0
			for _, g := range t.goals {
				if g.Completed {
					n++
				}
			}
			return n >= 3
		},
	},
	{
		id: "focused", name: "Deep Focus", icon: "🧠", desc: "Log 1 hour",
		met: func(t *Tracker) bool { return t.stats.TotalTime >= 3600 },
	},
}

// evaluateAchievements unlocks every rule whose predicate holds and whose
// id is not yet in the badge set. Unlocks persist and emit one event each,
// in table order. Re-running with unchanged state unlocks nothing.
func (t *Tracker) evaluateAchievements() {
	unlocked := make(map[string]bool, len(t.badges))
	for _, id := range t.badges {
		unlocked[id] = true
	}

	changed := false
	for _, rule := range achievementRules {
		if unlocked[rule.id] || !rule.met(t) {
			continue
		}
		t.badges = append(t.badges, rule.id)
		unlocked[rule.id] = true
		changed = true
		t.queueEvent(EventAchievementUnlocked, fmt.Sprintf("🏆 Achievement Unlocked: %s!", rule.name))
	}
	if changed {
		t.saveBadges()
	}
}

// Badges returns every achievement with its unlocked state, in table order.
func (t *Tracker) Badges() []Badge {
	unlocked := make(map[string]bool, len(t.badges))
	for _, id := range t.badges {
		unlocked[id] = true
	}
	out := make([]Badge, 0, len(achievementRules))
	for _, rule := range achievementRules {
		out = append(out, Badge{
			ID:       rule.id,
			Name:     rule.name,
			Icon:     rule.icon,
			Desc:     rule.desc,
			Unlocked: unlocked[rule.id],
		})
	}
	return out
}

// UnlockedBadges returns the persisted badge ids in unlock order.
func (t *Tracker) UnlockedBadges() []string {
	out := make([]string, len(t.badges))
	copy(out, t.badges)
	return out
}
