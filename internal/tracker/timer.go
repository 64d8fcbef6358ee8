package tracker

// The focus timer is a countdown state machine ticked once per elapsed
// second by the caller. Start while already running is a no-op, which is
// what guarantees at most one live tick source: the display layer only
// schedules a new tick chain when Start actually transitions to running,
// and tags chains with a generation id so a stale scheduled tick fires
// into nothing after a pause or reset.

// Timer returns the current countdown snapshot.
func (t *Tracker) Timer() TimerState {
	return t.timer
}

// StartTimer begins the countdown. It reports whether the state changed,
// so the caller knows to schedule a tick chain; starting a running timer
// changes nothing.
func (t *Tracker) StartTimer() bool {
	if t.timer.Running {
		return false
	}
	t.timer.Running = true
	t.queueEvent(EventTimerStarted, "Focus time started! 🎯")
	return true
}

// PauseTimer halts the countdown, preserving the remaining time.
func (t *Tracker) PauseTimer() {
	t.timer.Running = false
}

// ResetTimer stops the countdown and loads a preset, which becomes the
// duration restored after the next completion.
func (t *Tracker) ResetTimer(minutes int) {
	if minutes <= 0 {
		minutes = DefaultPresetMinutes
	}
	t.preset = minutes
	t.timer.Running = false
	t.timer.Minutes = minutes
	t.timer.Seconds = 0
}

// TickTimer advances the countdown by one second. Reaching zero fires the
// completion: the timer stops, reloads the last preset, notifies, and
// achievements are re-evaluated. Every other tick accrues one second of
// focus time and persists stats.
func (t *Tracker) TickTimer() {
	if !t.timer.Running {
		return
	}
	switch {
	case t.timer.Seconds > 0:
		t.timer.Seconds--
	case t.timer.Minutes > 0:
		t.timer.Minutes--
		t.timer.Seconds = 59
	default:
		t.completeTimer()
		return
	}
	t.stats.TotalTime++
	t.saveStats()
}

func (t *Tracker) completeTimer() {
	t.timer.Running = false
	t.timer.Minutes = t.preset
	t.timer.Seconds = 0
	t.queueEvent(EventTimerComplete, "⏰ Timer complete! Great focus session!")
	t.notifier.Notify("Focus Session Complete", "Time for a break!")
	t.evaluateAchievements()
}
