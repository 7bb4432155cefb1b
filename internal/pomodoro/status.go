package pomodoro

import "time"

// State is the engine's top-level state.
type State int

const (
	// StateIdle means the idle animation is waiting for button A.
	StateIdle State = iota
	// StateRunning means a session interval is counting down.
	StateRunning
	// StatePaused means the pause sub-loop is blinking the display.
	StatePaused
)

// String returns the state tag used in status reports and metrics.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Status is a point-in-time snapshot of the engine for observers. The
// engine updates it at transition points; readers always get a copy.
type Status struct {
	State          State
	SessionID      string
	IntervalIndex  int
	IntervalKind   string
	IntervalCount  int
	SessionStarted time.Time
}

// Status returns a copy of the engine's current snapshot.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Settings returns a copy of the engine's active settings snapshot.
func (e *Engine) Settings() Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.clone()
}

// setStatus applies a mutation to the snapshot under the lock.
func (e *Engine) setStatus(mutate func(*Status)) {
	e.mu.Lock()
	mutate(&e.status)
	e.mu.Unlock()
}
