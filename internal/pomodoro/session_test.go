package pomodoro

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
)

func TestSessionRunsScheduleBackToBack(t *testing.T) {
	settings := fastSettings()
	settings.Schedule = []Kind{Work, ShortBreak}
	e, _, clock, bus := newTestEngine(t, settings)
	c := collectEvents(bus)

	var snapshots []Status
	clock.SleepHook = func(time.Duration) {
		offset := clock.CurrentTime.Sub(testBase)
		if offset == 500*time.Millisecond || offset == 1300*time.Millisecond {
			snapshots = append(snapshots, e.Status())
		}
	}

	outcome, err := e.runSession(context.Background())
	if err != nil {
		t.Fatalf("runSession returned error: %v", err)
	}
	if outcome != Completed {
		t.Fatalf("outcome = %v, want %v", outcome, Completed)
	}

	// Work runs 0 to 1.1s, the short break 1.1s to 1.7s.
	if got, want := clock.Now(), testBase.Add(1700*time.Millisecond); !got.Equal(want) {
		t.Errorf("session finished at %v, want %v", got.Sub(testBase), want.Sub(testBase))
	}

	if len(snapshots) != 2 {
		t.Fatalf("got %d status snapshots, want 2", len(snapshots))
	}
	first, second := snapshots[0], snapshots[1]
	if first.State != StateRunning || first.IntervalIndex != 0 || first.IntervalKind != "work" {
		t.Errorf("status during work = %+v", first)
	}
	if second.IntervalIndex != 1 || second.IntervalKind != "short_break" {
		t.Errorf("status during break = %+v", second)
	}
	if first.IntervalCount != 2 || !first.SessionStarted.Equal(testBase) {
		t.Errorf("session fields = %+v", first)
	}

	c.settle()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sessionStarted) != 1 {
		t.Fatalf("got %d session started events, want 1", len(c.sessionStarted))
	}
	started := c.sessionStarted[0]
	if !strings.HasPrefix(started.SessionID, "sess_") {
		t.Errorf("session id = %q, want sess_ prefix", started.SessionID)
	}
	if len(started.Schedule) != 2 || started.Schedule[0] != "work" || started.Schedule[1] != "short_break" {
		t.Errorf("schedule in event = %v", started.Schedule)
	}

	if got := len(c.intervalStarted); got != 2 {
		t.Fatalf("got %d interval started events, want 2", got)
	}
	for i, ev := range c.intervalStarted {
		if ev.Index != i {
			t.Errorf("interval started %d has index %d", i, ev.Index)
		}
		if ev.SessionID != started.SessionID {
			t.Errorf("interval started %d carries session %q, want %q", i, ev.SessionID, started.SessionID)
		}
	}
	if got, want := c.intervalStarted[1].Duration, 500*time.Millisecond; got != want {
		t.Errorf("break duration in event = %v, want %v", got, want)
	}

	if got := len(c.intervalDone); got != 2 {
		t.Errorf("got %d interval completed events, want 2", got)
	} else {
		if want := testBase.Add(1100 * time.Millisecond); !c.intervalDone[0].FinishedAt.Equal(want) {
			t.Errorf("work interval finished at %v, want %v",
				c.intervalDone[0].FinishedAt.Sub(testBase), want.Sub(testBase))
		}
		if want := testBase.Add(1700 * time.Millisecond); !c.intervalDone[1].FinishedAt.Equal(want) {
			t.Errorf("break interval finished at %v, want %v",
				c.intervalDone[1].FinishedAt.Sub(testBase), want.Sub(testBase))
		}
	}
	if len(c.sessionCompleted) != 1 {
		t.Fatalf("got %d session completed events, want 1", len(c.sessionCompleted))
	}
	done := c.sessionCompleted[0]
	if done.Intervals != 2 {
		t.Errorf("completed intervals = %d, want 2", done.Intervals)
	}
	if want := testBase.Add(1700 * time.Millisecond); !done.FinishedAt.Equal(want) {
		t.Errorf("FinishedAt = %v, want %v", done.FinishedAt.Sub(testBase), want.Sub(testBase))
	}
	if len(c.sessionAborted) != 0 {
		t.Errorf("got %d aborted events for a completed session", len(c.sessionAborted))
	}
}

func TestSessionCancelAbortsRemainingIntervals(t *testing.T) {
	settings := fastSettings()
	settings.Schedule = []Kind{Work, ShortBreak, Work}
	e, fb, clock, bus := newTestEngine(t, settings)
	c := collectEvents(bus)

	// Cancel during the short break, 200ms into it.
	fb.press(board.ButtonB, testBase.Add(1300*time.Millisecond), 50*time.Millisecond)

	outcome, err := e.runSession(context.Background())
	if err != nil {
		t.Fatalf("runSession returned error: %v", err)
	}
	if outcome != Cancelled {
		t.Fatalf("outcome = %v, want %v", outcome, Cancelled)
	}

	// Cancel at 1.3s plus the 600ms flash; the third interval never runs.
	if got, want := clock.Now(), testBase.Add(1900*time.Millisecond); !got.Equal(want) {
		t.Errorf("session ended at %v, want %v", got.Sub(testBase), want.Sub(testBase))
	}

	c.settle()
	c.mu.Lock()
	defer c.mu.Unlock()
	if got := len(c.intervalStarted); got != 2 {
		t.Errorf("got %d interval started events, want 2", got)
	}
	if got := len(c.intervalDone); got != 1 {
		t.Errorf("got %d interval completed events, want 1", got)
	}
	if len(c.intervalGone) != 1 {
		t.Fatalf("got %d interval cancelled events, want 1", len(c.intervalGone))
	}
	gone := c.intervalGone[0]
	if gone.Index != 1 || gone.Kind != "short_break" {
		t.Errorf("cancelled interval = %+v, want index 1 short_break", gone)
	}
	if want := testBase.Add(1900 * time.Millisecond); !gone.FinishedAt.Equal(want) {
		t.Errorf("cancelled interval finished at %v, want %v",
			gone.FinishedAt.Sub(testBase), want.Sub(testBase))
	}

	if len(c.sessionAborted) != 1 {
		t.Fatalf("got %d session aborted events, want 1", len(c.sessionAborted))
	}
	aborted := c.sessionAborted[0]
	if aborted.Completed != 1 || aborted.AtIndex != 1 {
		t.Errorf("aborted event = %+v, want 1 completed interval at index 1", aborted)
	}
	if want := testBase.Add(1900 * time.Millisecond); !aborted.FinishedAt.Equal(want) {
		t.Errorf("FinishedAt = %v, want %v", aborted.FinishedAt.Sub(testBase), want.Sub(testBase))
	}
	if len(c.sessionCompleted) != 0 {
		t.Errorf("got %d session completed events for an aborted session", len(c.sessionCompleted))
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	e, _, _, bus := newTestEngine(t, fastSettings())
	c := collectEvents(bus)

	for i := 0; i < 2; i++ {
		if _, err := e.runSession(context.Background()); err != nil {
			t.Fatalf("runSession %d returned error: %v", i, err)
		}
	}

	c.settle()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sessionStarted) != 2 {
		t.Fatalf("got %d session started events, want 2", len(c.sessionStarted))
	}
	if a, b := c.sessionStarted[0].SessionID, c.sessionStarted[1].SessionID; a == b {
		t.Errorf("both sessions got id %q", a)
	}
}
