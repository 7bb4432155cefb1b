package pomodoro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
)

func TestNewRejectsInvalidSettings(t *testing.T) {
	clock := &MockClock{CurrentTime: testBase}
	fb := newFakeBoard(clock)
	settings := fastSettings()
	settings.Work = 0

	if _, err := New(fb, clock, nil, settings); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("New() error = %v, want ErrInvalidDuration", err)
	}
}

func TestEngineStartsIdle(t *testing.T) {
	e, _, _, _ := newTestEngine(t, fastSettings())

	got := e.Status()
	if got.State != StateIdle {
		t.Errorf("initial state = %v, want %v", got.State, StateIdle)
	}
	if got.SessionID != "" {
		t.Errorf("initial session id = %q, want empty", got.SessionID)
	}
}

func TestStageSettingsRejectsInvalid(t *testing.T) {
	e, _, _, _ := newTestEngine(t, fastSettings())

	bad := fastSettings()
	bad.Schedule = nil
	if err := e.StageSettings(bad); !errors.Is(err, ErrEmptySchedule) {
		t.Errorf("StageSettings error = %v, want ErrEmptySchedule", err)
	}

	if got := e.Settings(); len(got.Schedule) == 0 {
		t.Errorf("active settings lost their schedule after a rejected stage")
	}
}

func TestRunIdlesUntilStartPress(t *testing.T) {
	e, fb, clock, bus := newTestEngine(t, fastSettings())
	c := collectEvents(bus)

	fb.press(board.ButtonA, testBase.Add(700*time.Millisecond), 60*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	clock.SleepHook = func(time.Duration) {
		if clock.CurrentTime.Sub(testBase) >= 3*time.Second {
			cancel()
		}
	}

	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}

	// One pixel walks backward around the ring while idle: pixel 0
	// first, then one step per update period. The press at 700ms starts
	// the session after a single step; the second idle phase gets two
	// steps before shutdown.
	var litIdle []int
	for _, w := range fb.pixelWrites {
		if w.color == idleColor {
			litIdle = append(litIdle, w.index)
		}
	}
	wantLit := []int{0, 9, 0, 9, 8}
	if len(litIdle) != len(wantLit) {
		t.Fatalf("idle pixel sequence = %v, want %v", litIdle, wantLit)
	}
	for i, idx := range litIdle {
		if idx != wantLit[i] {
			t.Errorf("idle step %d lit pixel %d, want %d", i, idx, wantLit[i])
		}
	}

	if got := e.Status().State; got != StateIdle {
		t.Errorf("state after shutdown while idle = %v, want %v", got, StateIdle)
	}

	c.settle()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sessionStarted) != 1 {
		t.Fatalf("got %d sessions, want 1", len(c.sessionStarted))
	}
	if want := testBase.Add(700 * time.Millisecond); !c.sessionStarted[0].StartedAt.Equal(want) {
		t.Errorf("session started at %v, want %v",
			c.sessionStarted[0].StartedAt.Sub(testBase), want.Sub(testBase))
	}
	if len(c.sessionCompleted) != 1 {
		t.Fatalf("got %d completed sessions, want 1", len(c.sessionCompleted))
	}
	if want := testBase.Add(1800 * time.Millisecond); !c.sessionCompleted[0].FinishedAt.Equal(want) {
		t.Errorf("session finished at %v, want %v",
			c.sessionCompleted[0].FinishedAt.Sub(testBase), want.Sub(testBase))
	}
	if len(c.presses) != 1 || c.presses[0].Button != board.ButtonA.String() {
		t.Errorf("accepted presses = %+v, want a single button A press", c.presses)
	}
}

func TestRunAppliesStagedSettingsBetweenSessions(t *testing.T) {
	e, fb, clock, bus := newTestEngine(t, fastSettings())
	c := collectEvents(bus)

	// First session runs 700ms to 1.8s on the old settings. The shorter
	// work duration is staged mid-session and must only apply once the
	// engine is idle again.
	fb.press(board.ButtonA, testBase.Add(700*time.Millisecond), 60*time.Millisecond)
	fb.press(board.ButtonA, testBase.Add(2100*time.Millisecond), 60*time.Millisecond)

	next := fastSettings()
	next.Work = 500 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	staged := false
	clock.SleepHook = func(time.Duration) {
		offset := clock.CurrentTime.Sub(testBase)
		if !staged && offset >= time.Second {
			staged = true
			if err := e.StageSettings(next); err != nil {
				t.Errorf("StageSettings returned error: %v", err)
			}
		}
		if offset >= 3200*time.Millisecond {
			cancel()
		}
	}

	if err := e.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}

	if got, want := e.Settings().Work, 500*time.Millisecond; got != want {
		t.Errorf("active work duration = %v, want %v", got, want)
	}

	c.settle()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reloads) != 1 {
		t.Fatalf("got %d settings reload events, want 1", len(c.reloads))
	}
	if got, want := c.reloads[0].Work, 500*time.Millisecond; got != want {
		t.Errorf("reloaded work duration = %v, want %v", got, want)
	}

	if len(c.sessionCompleted) != 2 {
		t.Fatalf("got %d completed sessions, want 2", len(c.sessionCompleted))
	}
	var durations []time.Duration
	for _, ev := range c.sessionCompleted {
		durations = append(durations, ev.FinishedAt.Sub(ev.StartedAt))
	}
	// The staged change must not shorten the running session.
	wantDurations := map[time.Duration]bool{
		1100 * time.Millisecond: true,
		600 * time.Millisecond:  true,
	}
	for _, d := range durations {
		if !wantDurations[d] {
			t.Errorf("session duration %v, want one of 1.1s (old settings) and 600ms (new)", d)
		}
		delete(wantDurations, d)
	}
}

func TestModWrapsNegative(t *testing.T) {
	cases := []struct {
		n, m, want int
	}{
		{0, 10, 0},
		{-1, 10, 9},
		{-10, 10, 0},
		{14, 10, 4},
	}
	for _, tc := range cases {
		if got := mod(tc.n, tc.m); got != tc.want {
			t.Errorf("mod(%d, %d) = %d, want %d", tc.n, tc.m, got, tc.want)
		}
	}
}
