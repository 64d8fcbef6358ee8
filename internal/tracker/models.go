package tracker

import "time"

// Category classifies a task.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryOther    Category = "other"
)

// Categories lists all task categories in display order.
var Categories = []Category{
	CategoryWork, CategoryPersonal, CategoryHealth, CategoryLearning, CategoryOther,
}

// Priority orders a task's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists all priorities in display order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// GoalType splits goals into the two planning horizons shown as tabs.
type GoalType string

const (
	GoalShortTerm GoalType = "short-term"
	GoalLongTerm  GoalType = "long-term"
)

// Filter selects which tasks the display layer is shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Theme is the persisted UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	TimeSpent int64     `json:"timeSpent"` // seconds
}

type Goal struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Deadline  *time.Time `json:"deadline,omitempty"`
	Type      GoalType   `json:"type"`
	Progress  int        `json:"progress"` // 0-100
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Completion records that a task in the given category was completed on
// Date. Records are append-only: un-completing or deleting the task does
// not remove them, so the history behind streaks and charts survives edits.
type Completion struct {
	Date     time.Time `json:"date"`
	Category Category  `json:"category"`
}

// Stats is the persisted singleton of accumulated counters.
type Stats struct {
	TotalTime      int64        `json:"totalTime"` // focus seconds, non-decreasing
	LastActiveDate *time.Time   `json:"lastActiveDate"`
	Streak         int          `json:"streak"`
	TasksCompleted []Completion `json:"tasksCompleted"`
}

// TimerState is the countdown snapshot exposed to the display layer.
// It is in-memory only and resets with the process.
type TimerState struct {
	Minutes       int
	Seconds       int
	Running       bool
	CurrentTaskID *int64
}

// EventKind tags a notification emitted by the core.
type EventKind int

const (
	EventTaskAdded EventKind = iota
	EventTaskCompleted
	EventGoalSet
	EventGoalAchieved
	EventTimerStarted
	EventTimerComplete
	EventAchievementUnlocked
)

// Event is a short human-readable notification for the display layer to
// render transiently.
type Event struct {
	Kind    EventKind
	Message string
}

// Insight is one generated coaching message.
type Insight struct {
	Icon string
	Text string
}

// Badge pairs an achievement definition with its unlocked state for display.
type Badge struct {
	ID       string
	Name     string
	Icon     string
	Desc     string
	Unlocked bool
}
