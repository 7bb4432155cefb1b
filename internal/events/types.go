package events

import "time"

// Event type constants for kelindar/event.
const (
	TypeSessionStarted uint32 = iota + 1
	TypeSessionCompleted
	TypeSessionAborted
	TypeIntervalStarted
	TypeIntervalCompleted
	TypeIntervalCancelled
	TypeTimerPaused
	TypeTimerResumed
	TypePressAccepted
	TypeSettingsReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// SessionStartedEvent fires when button A starts a new session.
type SessionStartedEvent struct {
	SessionID string    `json:"session_id"`
	Schedule  []string  `json:"schedule"`
	StartedAt time.Time `json:"started_at"`
}

// Type returns the event type identifier for SessionStartedEvent.
func (e SessionStartedEvent) Type() uint32 { return TypeSessionStarted }

// SessionCompletedEvent fires when every interval of a session ran to
// the end.
type SessionCompletedEvent struct {
	SessionID  string    `json:"session_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Intervals  int       `json:"intervals"`
}

// Type returns the event type identifier for SessionCompletedEvent.
func (e SessionCompletedEvent) Type() uint32 { return TypeSessionCompleted }

// SessionAbortedEvent fires when a cancel press ended the session early.
type SessionAbortedEvent struct {
	SessionID  string    `json:"session_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Completed  int       `json:"completed_intervals"`
	AtIndex    int       `json:"at_index"`
}

// Type returns the event type identifier for SessionAbortedEvent.
func (e SessionAbortedEvent) Type() uint32 { return TypeSessionAborted }

// IntervalStartedEvent fires when the engine enters the next interval of
// a session schedule.
type IntervalStartedEvent struct {
	SessionID string        `json:"session_id"`
	Index     int           `json:"index"`
	Kind      string        `json:"kind"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"started_at"`
}

// Type returns the event type identifier for IntervalStartedEvent.
func (e IntervalStartedEvent) Type() uint32 { return TypeIntervalStarted }

// IntervalCompletedEvent fires when an interval ran to the end of its
// duration.
type IntervalCompletedEvent struct {
	SessionID  string    `json:"session_id"`
	Index      int       `json:"index"`
	Kind       string    `json:"kind"`
	FinishedAt time.Time `json:"finished_at"`
}

// Type returns the event type identifier for IntervalCompletedEvent.
func (e IntervalCompletedEvent) Type() uint32 { return TypeIntervalCompleted }

// IntervalCancelledEvent fires when a cancel press cut an interval short.
type IntervalCancelledEvent struct {
	SessionID  string    `json:"session_id"`
	Index      int       `json:"index"`
	Kind       string    `json:"kind"`
	FinishedAt time.Time `json:"finished_at"`
}

// Type returns the event type identifier for IntervalCancelledEvent.
func (e IntervalCancelledEvent) Type() uint32 { return TypeIntervalCancelled }

// TimerPausedEvent fires when button A pauses a running interval.
type TimerPausedEvent struct {
	SessionID string    `json:"session_id"`
	Index     int       `json:"index"`
	PausedAt  time.Time `json:"paused_at"`
}

// Type returns the event type identifier for TimerPausedEvent.
func (e TimerPausedEvent) Type() uint32 { return TypeTimerPaused }

// TimerResumedEvent fires when a paused interval resumes. PausedFor is
// the wall time spent in the pause loop.
type TimerResumedEvent struct {
	SessionID string        `json:"session_id"`
	Index     int           `json:"index"`
	PausedFor time.Duration `json:"paused_for"`
}

// Type returns the event type identifier for TimerResumedEvent.
func (e TimerResumedEvent) Type() uint32 { return TypeTimerResumed }

// PressAcceptedEvent fires for every button press that passed the
// debouncer and steered the engine.
type PressAcceptedEvent struct {
	Button string    `json:"button"`
	At     time.Time `json:"at"`
}

// Type returns the event type identifier for PressAcceptedEvent.
func (e PressAcceptedEvent) Type() uint32 { return TypePressAccepted }

// SettingsReloadedEvent fires when a staged settings change is applied
// between sessions.
type SettingsReloadedEvent struct {
	Work       time.Duration `json:"work"`
	ShortBreak time.Duration `json:"short_break"`
	LongBreak  time.Duration `json:"long_break"`
}

// Type returns the event type identifier for SettingsReloadedEvent.
func (e SettingsReloadedEvent) Type() uint32 { return TypeSettingsReloaded }
