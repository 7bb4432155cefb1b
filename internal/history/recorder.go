package history

import (
	"context"
	"log/slog"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

// Recorder writes timer events from the bus through to the store. A
// failed write is logged and dropped; the timer never blocks on the
// database.
type Recorder struct {
	store         *Store
	logger        *slog.Logger
	unsubscribers []func()
}

// NewRecorder subscribes to the bus and records sessions until Close
// is called.
func NewRecorder(store *Store, bus *events.Bus) *Recorder {
	r := &Recorder{
		store:  store,
		logger: logging.GetLogger("history"),
	}

	ctx := context.Background()
	r.unsubscribers = []func(){
		bus.Subscribe(func(e events.SessionStartedEvent) {
			err := store.StartSession(ctx, e.SessionID, e.Schedule, e.StartedAt)
			r.logFailure("record session start", e.SessionID, err)
		}),
		bus.Subscribe(func(e events.SessionCompletedEvent) {
			err := store.FinishSession(ctx, e.SessionID, OutcomeCompleted, e.FinishedAt, e.Intervals)
			r.logFailure("record session completion", e.SessionID, err)
		}),
		bus.Subscribe(func(e events.SessionAbortedEvent) {
			err := store.FinishSession(ctx, e.SessionID, OutcomeAborted, e.FinishedAt, e.Completed)
			r.logFailure("record session abort", e.SessionID, err)
		}),
		bus.Subscribe(func(e events.IntervalStartedEvent) {
			err := store.StartInterval(ctx, e.SessionID, e.Index, e.Kind, e.StartedAt)
			r.logFailure("record interval start", e.SessionID, err)
		}),
		bus.Subscribe(func(e events.IntervalCompletedEvent) {
			err := store.FinishInterval(ctx, e.SessionID, e.Index, OutcomeCompleted, e.FinishedAt)
			r.logFailure("record interval completion", e.SessionID, err)
		}),
		bus.Subscribe(func(e events.IntervalCancelledEvent) {
			err := store.FinishInterval(ctx, e.SessionID, e.Index, OutcomeCancelled, e.FinishedAt)
			r.logFailure("record interval cancellation", e.SessionID, err)
		}),
		bus.Subscribe(func(e events.TimerResumedEvent) {
			err := store.AddIntervalPause(ctx, e.SessionID, e.Index, e.PausedFor.Seconds())
			r.logFailure("record pause time", e.SessionID, err)
		}),
	}
	return r
}

// Close detaches the recorder from the bus. The store stays open.
func (r *Recorder) Close() {
	for _, unsub := range r.unsubscribers {
		unsub()
	}
	r.unsubscribers = nil
}

func (r *Recorder) logFailure(action, sessionID string, err error) {
	if err == nil {
		return
	}
	r.logger.Error("Failed to "+action, "session_id", sessionID, "error", err)
}
