// Package tracker owns the productivity tracker's canonical state: tasks,
// goals, accumulated stats, unlocked badges and the focus timer. Every
// mutation persists through the injected storage.Store before returning,
// then recomputes derived stats and re-evaluates achievements. Derivations
// (completion rate, histograms, streak, insights) are pure reads over the
// current state.
package tracker

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"prodflow/internal/storage"
)

// ErrEmptyTitle rejects tasks and goals whose title is empty after trimming.
var ErrEmptyTitle = errors.New("tracker: title must not be empty")

// Notifier receives best-effort desktop-style notifications. Availability
// must never affect core behavior; the default implementation discards them.
type Notifier interface {
	Notify(title, body string)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, string) {}

// Tracker is the single owner of all persisted collections. It is not safe
// for concurrent use: the event-driven callers (key handlers, the 1s tick)
// run mutations to completion one at a time.
type Tracker struct {
	store    storage.Store
	logger   *slog.Logger
	now      func() time.Time
	rng      *rand.Rand
	notifier Notifier

	tasks  []Task
	goals  []Goal
	stats  Stats
	badges []string
	theme  Theme

	timer  TimerState
	preset int // minutes loaded by the last reset, restored on completion

	filter  Filter
	goalTab GoalType

	events []Event
	lastID int64
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithClock overrides the wall clock, for tests that exercise date logic.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithRand seeds the randomness behind motivational insight selection.
func WithRand(r *rand.Rand) Option {
	return func(t *Tracker) { t.rng = r }
}

func WithNotifier(n Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

// DefaultPresetMinutes is the focus timer's initial countdown length.
const DefaultPresetMinutes = 25

// New loads all persisted collections from store, falling back to empty
// defaults when a blob is missing or unreadable.
func New(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		notifier: noopNotifier{},
		theme:    ThemeLight,
		preset:   DefaultPresetMinutes,
		filter:   FilterAll,
		goalTab:  GoalShortTerm,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewSource(t.now().UnixNano()))
	}

	t.loadBlob(storage.KeyTasks, &t.tasks)
	t.loadBlob(storage.KeyGoals, &t.goals)
	t.loadBlob(storage.KeyStats, &t.stats)
	t.loadBlob(storage.KeyBadges, &t.badges)
	t.loadBlob(storage.KeyTheme, &t.theme)
	if t.theme != ThemeDark {
		t.theme = ThemeLight
	}

	t.timer = TimerState{Minutes: t.preset}

	for _, task := range t.tasks {
		if task.ID > t.lastID {
			t.lastID = task.ID
		}
	}
	for _, g := range t.goals {
		if g.ID > t.lastID {
			t.lastID = g.ID
		}
	}

	// Persisted state that already qualifies unlocks at launch, not on the
	// next mutation.
	t.evaluateAchievements()
	return t
}

// loadBlob unmarshals the blob under key into v. Missing or corrupt blobs
// leave v untouched so the zero-value default applies.
func (t *Tracker) loadBlob(key string, v any) {
	raw, ok := t.store.Load(key)
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.logger.Warn("discarding corrupt blob", "key", key, "error", err)
	}
}

// saveBlob marshals v under key. Write failures are logged and ignored;
// the in-memory state remains authoritative for the session.
func (t *Tracker) saveBlob(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		t.logger.Error("marshal blob", "key", key, "error", err)
		return
	}
	if err := t.store.Save(key, raw); err != nil {
		t.logger.Warn("persist blob", "key", key, "error", err)
	}
}

func (t *Tracker) saveTasks()  { t.saveBlob(storage.KeyTasks, t.tasks) }
func (t *Tracker) saveGoals()  { t.saveBlob(storage.KeyGoals, t.goals) }
func (t *Tracker) saveStats()  { t.saveBlob(storage.KeyStats, t.stats) }
func (t *Tracker) saveBadges() { t.saveBlob(storage.KeyBadges, t.badges) }

// nextID derives a fresh identifier from the wall clock, bumped past the
// last issued one so rapid creations stay unique.
func (t *Tracker) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	t.lastID = id
	return id
}

func (t *Tracker) queueEvent(kind EventKind, message string) {
	t.events = append(t.events, Event{Kind: kind, Message: message})
}

// DrainEvents returns and clears the pending notification queue.
func (t *Tracker) DrainEvents() []Event {
	ev := t.events
	t.events = nil
	return ev
}

// ---- Tasks ----

// AddTask creates a task at the head of the list (most recent first).
func (t *Tracker) AddTask(title string, category Category, priority Priority) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	task := Task{
		ID:        t.nextID(),
		Title:     title,
		Category:  category,
		Priority:  priority,
		CreatedAt: t.now(),
	}
	t.tasks = append([]Task{task}, t.tasks...)
	t.saveTasks()
	t.recompute()
	t.queueEvent(EventTaskAdded, "Task added successfully! 🎉")
	t.evaluateAchievements()
	return nil
}

// ToggleTask flips a task's completed flag. Completing appends a Completion
// record; un-completing leaves the record in place. Unknown ids are ignored.
func (t *Tracker) ToggleTask(id int64) {
	idx := t.taskIndex(id)
	if idx < 0 {
		return
	}
	task := &t.tasks[idx]
	task.Completed = !task.Completed
	if task.Completed {
		t.stats.TasksCompleted = append(t.stats.TasksCompleted, Completion{
			Date:     t.now(),
			Category: task.Category,
		})
		t.queueEvent(EventTaskCompleted, "Great job completing this task! 🌟")
	}
	t.saveTasks()
	t.saveStats()
	t.recompute()
	if task.Completed {
		t.evaluateAchievements()
	}
}

// DeleteTask removes a task by id. Its completion history stays in Stats.
func (t *Tracker) DeleteTask(id int64) {
	idx := t.taskIndex(id)
	if idx < 0 {
		return
	}
	t.tasks = append(t.tasks[:idx], t.tasks[idx+1:]...)
	t.saveTasks()
	t.recompute()
}

func (t *Tracker) taskIndex(id int64) int {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// ---- Goals ----

// AddGoal creates a goal. An empty goalType defaults to the active tab.
func (t *Tracker) AddGoal(title string, deadline *time.Time, goalType GoalType) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if goalType == "" {
		goalType = t.goalTab
	}
	goal := Goal{
		ID:        t.nextID(),
		Title:     title,
		Deadline:  deadline,
		Type:      goalType,
		CreatedAt: t.now(),
	}
	t.goals = append([]Goal{goal}, t.goals...)
	t.saveGoals()
	t.queueEvent(EventGoalSet, "Goal set! Let's make it happen! 💪")
	return nil
}

// UpdateGoalProgress sets a goal's progress, clamped to [0,100]. Completed
// is derived: true exactly when progress reaches 100.
func (t *Tracker) UpdateGoalProgress(id int64, progress int) {
	idx := t.goalIndex(id)
	if idx < 0 {
		return
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	goal := &t.goals[idx]
	wasCompleted := goal.Completed
	goal.Progress = progress
	goal.Completed = progress == 100
	t.saveGoals()
	if goal.Completed && !wasCompleted {
		t.queueEvent(EventGoalAchieved, "🎊 Goal achieved! You're amazing!")
		t.evaluateAchievements()
	}
}

// DeleteGoal removes a goal by id; unknown ids are ignored.
func (t *Tracker) DeleteGoal(id int64) {
	idx := t.goalIndex(id)
	if idx < 0 {
		return
	}
	t.goals = append(t.goals[:idx], t.goals[idx+1:]...)
	t.saveGoals()
}

func (t *Tracker) goalIndex(id int64) int {
	for i := range t.goals {
		if t.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// ---- Filters, theme ----

func (t *Tracker) SetFilter(f Filter)    { t.filter = f }
func (t *Tracker) Filter() Filter        { return t.filter }
func (t *Tracker) SetGoalTab(g GoalType) { t.goalTab = g }
func (t *Tracker) GoalTab() GoalType     { return t.goalTab }

func (t *Tracker) Theme() Theme { return t.theme }

// ToggleTheme flips between light and dark and persists the choice.
func (t *Tracker) ToggleTheme() Theme {
	if t.theme == ThemeLight {
		t.theme = ThemeDark
	} else {
		t.theme = ThemeLight
	}
	t.saveBlob(storage.KeyTheme, t.theme)
	return t.theme
}

// ---- Read surface ----

// FilteredTasks returns the tasks visible under the current filter, in
// stored (most recent first) order.
func (t *Tracker) FilteredTasks() []Task {
	out := make([]Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		switch t.filter {
		case FilterActive:
			if task.Completed {
				continue
			}
		case FilterCompleted:
			if !task.Completed {
				continue
			}
		}
		out = append(out, task)
	}
	return out
}

// FilteredGoals returns the goals on the active tab.
func (t *Tracker) FilteredGoals() []Goal {
	out := make([]Goal, 0, len(t.goals))
	for _, g := range t.goals {
		if g.Type == t.goalTab {
			out = append(out, g)
		}
	}
	return out
}

// Tasks returns a copy of the full task list.
func (t *Tracker) Tasks() []Task {
	out := make([]Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// Goals returns a copy of the full goal list.
func (t *Tracker) Goals() []Goal {
	out := make([]Goal, len(t.goals))
	copy(out, t.goals)
	return out
}

// Stats returns a snapshot of the persisted counters.
func (t *Tracker) Stats() Stats {
	s := t.stats
	s.TasksCompleted = make([]Completion, len(t.stats.TasksCompleted))
	copy(s.TasksCompleted, t.stats.TasksCompleted)
	return s
}

// recompute refreshes derived stats after a mutation. Streak advancement
// is the only derivation with persistent effect.
func (t *Tracker) recompute() {
	t.updateStreak()
}
