package tracker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"prodflow/internal/storage"
)

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemoryStore()
	return New(mem, opts...), mem
}

// newSeededStore returns a memory store with a stats blob already written,
// for scenarios that need pre-existing history.
func newSeededStore(t *testing.T, s Stats) *storage.Memory {
	t.Helper()
	mem := storage.NewMemoryStore()
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal stats: %v", err)
	}
	if err := mem.Save(storage.KeyStats, raw); err != nil {
		t.Fatalf("seed stats: %v", err)
	}
	return mem
}

// ============================================================
// Tasks
// ============================================================

func TestAddTask(t *testing.T) {
	tr, _ := newTestTracker(t)

	if err := tr.AddTask("Write report", CategoryWork, PriorityHigh); err != nil {
		t.Fatal(err)
	}
	tasks := tr.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0]
	if task.Title != "Write report" || task.Category != CategoryWork || task.Priority != PriorityHigh {
		t.Fatalf("unexpected task: %+v", task)
	}
	if task.Completed {
		t.Fatal("new task should not be completed")
	}
	if task.TimeSpent != 0 {
		t.Fatal("new task should have 0 time spent")
	}
	if task.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("CreatedAt should be set")
	}
}

func TestAddTaskPrepends(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("first", CategoryWork, PriorityLow)
	tr.AddTask("second", CategoryWork, PriorityLow)

	tasks := tr.Tasks()
	if tasks[0].Title != "second" || tasks[1].Title != "first" {
		t.Fatalf("expected most-recent-first order, got %q, %q", tasks[0].Title, tasks[1].Title)
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	tr, _ := newTestTracker(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		err := tr.AddTask(title, CategoryWork, PriorityLow)
		if !errors.Is(err, ErrEmptyTitle) {
			t.Fatalf("AddTask(%q): expected ErrEmptyTitle, got %v", title, err)
		}
	}
	if len(tr.Tasks()) != 0 {
		t.Fatal("rejected tasks should not be stored")
	}
}

func TestAddTaskTrimsTitle(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("  padded  ", CategoryOther, PriorityMedium)
	if got := tr.Tasks()[0].Title; got != "padded" {
		t.Fatalf("expected trimmed title, got %q", got)
	}
}

func TestTaskIDsUnique(t *testing.T) {
	tr, _ := newTestTracker(t)
	for i := 0; i < 50; i++ {
		tr.AddTask("task", CategoryWork, PriorityLow)
	}
	seen := make(map[int64]bool)
	for _, task := range tr.Tasks() {
		if seen[task.ID] {
			t.Fatalf("duplicate id %d", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestToggleTask(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("do it", CategoryHealth, PriorityHigh)
	id := tr.Tasks()[0].ID

	tr.ToggleTask(id)
	if !tr.Tasks()[0].Completed {
		t.Fatal("task should be completed")
	}
	if got := len(tr.Stats().TasksCompleted); got != 1 {
		t.Fatalf("expected 1 completion record, got %d", got)
	}
	if tr.Stats().TasksCompleted[0].Category != CategoryHealth {
		t.Fatal("completion record should carry the task category")
	}
}

func TestToggleTaskAsymmetric(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("do it", CategoryWork, PriorityLow)
	id := tr.Tasks()[0].ID

	tr.ToggleTask(id) // complete
	tr.ToggleTask(id) // un-complete

	if tr.Tasks()[0].Completed {
		t.Fatal("double toggle should restore the flag")
	}
	// The completion record is history, not state, and is never removed.
	if got := len(tr.Stats().TasksCompleted); got != 1 {
		t.Fatalf("expected 1 completion record after round-trip, got %d", got)
	}
}

func TestToggleTaskUnknownID(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("only", CategoryWork, PriorityLow)

	tr.ToggleTask(99999)
	if tr.Tasks()[0].Completed {
		t.Fatal("unknown id should be a no-op")
	}
	if len(tr.Stats().TasksCompleted) != 0 {
		t.Fatal("no completion record should be appended")
	}
}

func TestDeleteTask(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("a", CategoryWork, PriorityLow)
	tr.AddTask("b", CategoryWork, PriorityLow)
	id := tr.Tasks()[0].ID

	tr.DeleteTask(id)
	if len(tr.Tasks()) != 1 {
		t.Fatalf("expected 1 task left, got %d", len(tr.Tasks()))
	}
	tr.DeleteTask(99999) // no-op
	if len(tr.Tasks()) != 1 {
		t.Fatal("deleting unknown id should be a no-op")
	}
}

func TestDeleteTaskKeepsHistory(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("done then gone", CategoryLearning, PriorityLow)
	id := tr.Tasks()[0].ID
	tr.ToggleTask(id)
	tr.DeleteTask(id)

	if len(tr.Tasks()) != 0 {
		t.Fatal("task should be gone")
	}
	if len(tr.Stats().TasksCompleted) != 1 {
		t.Fatal("completion history must survive deletion")
	}
}

// ============================================================
// Goals
// ============================================================

func TestAddGoal(t *testing.T) {
	tr, _ := newTestTracker(t)
	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)

	if err := tr.AddGoal("Ship v1", &deadline, GoalLongTerm); err != nil {
		t.Fatal(err)
	}
	goals := tr.Goals()
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.Title != "Ship v1" || g.Type != GoalLongTerm {
		t.Fatalf("unexpected goal: %+v", g)
	}
	if g.Progress != 0 || g.Completed {
		t.Fatal("new goal should start at 0, not completed")
	}
	if g.Deadline == nil || !g.Deadline.Equal(deadline) {
		t.Fatal("deadline not stored")
	}
}

func TestAddGoalEmptyTitle(t *testing.T) {
	tr, _ := newTestTracker(t)
	if err := tr.AddGoal("  ", nil, GoalShortTerm); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if len(tr.Goals()) != 0 {
		t.Fatal("rejected goal should not be stored")
	}
}

func TestAddGoalDefaultsToActiveTab(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.SetGoalTab(GoalLongTerm)
	tr.AddGoal("default type", nil, "")
	if got := tr.Goals()[0].Type; got != GoalLongTerm {
		t.Fatalf("expected long-term from active tab, got %s", got)
	}
}

func TestUpdateGoalProgressClamps(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddGoal("clamp me", nil, GoalShortTerm)
	id := tr.Goals()[0].ID

	tr.UpdateGoalProgress(id, -5)
	if got := tr.Goals()[0].Progress; got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	tr.UpdateGoalProgress(id, 150)
	g := tr.Goals()[0]
	if g.Progress != 100 {
		t.Fatalf("expected clamp to 100, got %d", g.Progress)
	}
	if !g.Completed {
		t.Fatal("progress 100 should derive completed=true")
	}
	tr.UpdateGoalProgress(id, 99)
	g = tr.Goals()[0]
	if g.Completed {
		t.Fatal("progress below 100 should derive completed=false")
	}
}

func TestUpdateGoalProgressUnknownID(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.UpdateGoalProgress(42, 50) // must not panic
	if len(tr.Goals()) != 0 {
		t.Fatal("no goal should appear")
	}
}

func TestDeleteGoal(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddGoal("temp", nil, GoalShortTerm)
	id := tr.Goals()[0].ID

	tr.DeleteGoal(id)
	if len(tr.Goals()) != 0 {
		t.Fatal("goal should be removed")
	}
	tr.DeleteGoal(id) // no-op
}

// ============================================================
// Filters
// ============================================================

func TestFilteredTasks(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("open", CategoryWork, PriorityLow)
	tr.AddTask("closed", CategoryWork, PriorityLow)
	tr.ToggleTask(tr.Tasks()[0].ID) // "closed" is most recent

	tr.SetFilter(FilterActive)
	if got := tr.FilteredTasks(); len(got) != 1 || got[0].Title != "open" {
		t.Fatalf("active filter wrong: %+v", got)
	}
	tr.SetFilter(FilterCompleted)
	if got := tr.FilteredTasks(); len(got) != 1 || got[0].Title != "closed" {
		t.Fatalf("completed filter wrong: %+v", got)
	}
	tr.SetFilter(FilterAll)
	if got := tr.FilteredTasks(); len(got) != 2 {
		t.Fatalf("all filter should return everything, got %d", len(got))
	}
}

func TestFilteredGoals(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddGoal("short", nil, GoalShortTerm)
	tr.AddGoal("long", nil, GoalLongTerm)

	tr.SetGoalTab(GoalShortTerm)
	if got := tr.FilteredGoals(); len(got) != 1 || got[0].Title != "short" {
		t.Fatalf("short-term tab wrong: %+v", got)
	}
	tr.SetGoalTab(GoalLongTerm)
	if got := tr.FilteredGoals(); len(got) != 1 || got[0].Title != "long" {
		t.Fatalf("long-term tab wrong: %+v", got)
	}
}

func TestFilterDoesNotAffectCollections(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("a", CategoryWork, PriorityLow)
	tr.SetFilter(FilterCompleted)
	if len(tr.Tasks()) != 1 {
		t.Fatal("filter must not touch the underlying collection")
	}
}

// ============================================================
// Persistence round-trips
// ============================================================

func TestStateSurvivesReload(t *testing.T) {
	mem := storage.NewMemoryStore()
	tr := New(mem)
	tr.AddTask("persisted", CategoryLearning, PriorityMedium)
	tr.AddGoal("kept", nil, GoalShortTerm)
	tr.ToggleTask(tr.Tasks()[0].ID)

	reloaded := New(mem)
	if len(reloaded.Tasks()) != 1 || reloaded.Tasks()[0].Title != "persisted" {
		t.Fatalf("tasks not reloaded: %+v", reloaded.Tasks())
	}
	if !reloaded.Tasks()[0].Completed {
		t.Fatal("completed flag not reloaded")
	}
	if len(reloaded.Goals()) != 1 {
		t.Fatal("goals not reloaded")
	}
	if len(reloaded.Stats().TasksCompleted) != 1 {
		t.Fatal("completion history not reloaded")
	}
}

func TestCorruptBlobFallsBackToDefault(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.Save(storage.KeyTasks, []byte("{not json"))
	mem.Save(storage.KeyStats, []byte("[]")) // wrong shape

	tr := New(mem)
	if len(tr.Tasks()) != 0 {
		t.Fatal("corrupt tasks blob should yield empty list")
	}
	if tr.Stats().Streak != 0 || tr.Stats().TotalTime != 0 {
		t.Fatal("corrupt stats blob should yield zero stats")
	}
}

func TestWriteFailureDegradesSoft(t *testing.T) {
	mem := storage.NewMemoryStore()
	mem.FailWrites = true
	tr := New(mem)

	if err := tr.AddTask("in memory only", CategoryWork, PriorityLow); err != nil {
		t.Fatalf("write failure must not surface: %v", err)
	}
	if len(tr.Tasks()) != 1 {
		t.Fatal("state must stay usable when persistence fails")
	}
	id := tr.Tasks()[0].ID
	tr.ToggleTask(id)
	if !tr.Tasks()[0].Completed {
		t.Fatal("mutations must keep working without persistence")
	}
}

func TestReloadSeedsIDAllocator(t *testing.T) {
	mem := storage.NewMemoryStore()
	tr := New(mem)
	tr.AddTask("old", CategoryWork, PriorityLow)
	oldID := tr.Tasks()[0].ID

	reloaded := New(mem)
	reloaded.AddTask("new", CategoryWork, PriorityLow)
	if reloaded.Tasks()[0].ID <= oldID {
		t.Fatal("ids must stay monotonic across reloads")
	}
}

// ============================================================
// Theme
// ============================================================

func TestToggleThemePersists(t *testing.T) {
	mem := storage.NewMemoryStore()
	tr := New(mem)
	if tr.Theme() != ThemeLight {
		t.Fatal("default theme should be light")
	}
	tr.ToggleTheme()
	if tr.Theme() != ThemeDark {
		t.Fatal("toggle should switch to dark")
	}

	reloaded := New(mem)
	if reloaded.Theme() != ThemeDark {
		t.Fatal("theme should be persisted")
	}
}

// ============================================================
// Events
// ============================================================

func TestDrainEvents(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddTask("evented", CategoryWork, PriorityLow)

	events := tr.DrainEvents()
	if len(events) == 0 {
		t.Fatal("AddTask should queue an event")
	}
	if events[0].Kind != EventTaskAdded {
		t.Fatalf("expected task-added first, got %d", events[0].Kind)
	}
	if got := tr.DrainEvents(); len(got) != 0 {
		t.Fatal("drain should clear the queue")
	}
}

func TestGoalAchievedEvent(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.AddGoal("almost", nil, GoalShortTerm)
	id := tr.Goals()[0].ID
	tr.DrainEvents()

	tr.UpdateGoalProgress(id, 100)
	var found bool
	for _, ev := range tr.DrainEvents() {
		if ev.Kind == EventGoalAchieved {
			found = true
		}
	}
	if !found {
		t.Fatal("reaching 100%% should emit a goal-achieved event")
	}

	// Setting 100 again must not re-announce.
	tr.UpdateGoalProgress(id, 100)
	for _, ev := range tr.DrainEvents() {
		if ev.Kind == EventGoalAchieved {
			t.Fatal("already-completed goal should not re-announce")
		}
	}
}
