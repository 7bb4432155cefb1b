package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
)

// settle waits for the bus to finish its async dispatch before the
// next event with a write-order dependency goes out.
func settle() {
	time.Sleep(100 * time.Millisecond)
}

func TestRecorderPersistsSessionFlow(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer store.Close()

	bus := events.New()
	r := NewRecorder(store, bus)
	defer r.Close()

	bus.Publish(events.SessionStartedEvent{
		SessionID: "sess_r",
		Schedule:  []string{"work", "short_break"},
		StartedAt: historyBase,
	})
	settle()
	bus.Publish(events.IntervalStartedEvent{
		SessionID: "sess_r", Index: 0, Kind: "work",
		Duration: 45 * time.Minute, StartedAt: historyBase,
	})
	settle()
	bus.Publish(events.TimerPausedEvent{SessionID: "sess_r", Index: 0, PausedAt: historyBase.Add(10 * time.Minute)})
	bus.Publish(events.TimerResumedEvent{SessionID: "sess_r", Index: 0, PausedFor: 2 * time.Minute})
	settle()
	bus.Publish(events.IntervalCompletedEvent{
		SessionID: "sess_r", Index: 0, Kind: "work",
		FinishedAt: historyBase.Add(47 * time.Minute),
	})
	settle()
	bus.Publish(events.IntervalStartedEvent{
		SessionID: "sess_r", Index: 1, Kind: "short_break",
		Duration: 10 * time.Minute, StartedAt: historyBase.Add(47 * time.Minute),
	})
	settle()
	bus.Publish(events.IntervalCancelledEvent{
		SessionID: "sess_r", Index: 1, Kind: "short_break",
		FinishedAt: historyBase.Add(50 * time.Minute),
	})
	bus.Publish(events.SessionAbortedEvent{
		SessionID: "sess_r", StartedAt: historyBase,
		FinishedAt: historyBase.Add(50 * time.Minute),
		Completed:  1, AtIndex: 1,
	})
	settle()

	sessions, err := store.RecentSessions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	got := sessions[0]
	if got.ID != "sess_r" {
		t.Errorf("ID = %q, want sess_r", got.ID)
	}
	if got.Outcome != OutcomeAborted {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeAborted)
	}
	if got.Completed != 1 {
		t.Errorf("Completed = %d, want 1", got.Completed)
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(historyBase.Add(50*time.Minute)) {
		t.Errorf("FinishedAt = %v", got.FinishedAt)
	}

	if len(got.Intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(got.Intervals))
	}
	work := got.Intervals[0]
	if work.Outcome != OutcomeCompleted {
		t.Errorf("interval 0 outcome = %q, want %q", work.Outcome, OutcomeCompleted)
	}
	if work.PausedSeconds != 120 {
		t.Errorf("interval 0 PausedSeconds = %v, want 120", work.PausedSeconds)
	}
	brk := got.Intervals[1]
	if brk.Outcome != OutcomeCancelled || brk.Kind != "short_break" {
		t.Errorf("interval 1 = %+v, want cancelled short_break", brk)
	}
}

func TestRecorderCloseDetaches(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer store.Close()

	bus := events.New()
	r := NewRecorder(store, bus)
	r.Close()

	bus.Publish(events.SessionStartedEvent{SessionID: "sess_gone", StartedAt: historyBase})
	settle()

	sessions, err := store.RecentSessions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions after Close, want 0", len(sessions))
	}
}
