package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

var historyBase = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestStoreRecordsFullSession(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	schedule := []string{"work", "short_break"}
	if err := store.StartSession(ctx, "sess_a", schedule, historyBase); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := store.StartInterval(ctx, "sess_a", 0, "work", historyBase); err != nil {
		t.Fatalf("StartInterval: %v", err)
	}
	if err := store.AddIntervalPause(ctx, "sess_a", 0, 90); err != nil {
		t.Fatalf("AddIntervalPause: %v", err)
	}
	if err := store.FinishInterval(ctx, "sess_a", 0, OutcomeCompleted, historyBase.Add(45*time.Minute)); err != nil {
		t.Fatalf("FinishInterval: %v", err)
	}
	if err := store.StartInterval(ctx, "sess_a", 1, "short_break", historyBase.Add(45*time.Minute)); err != nil {
		t.Fatalf("StartInterval: %v", err)
	}
	if err := store.FinishInterval(ctx, "sess_a", 1, OutcomeCompleted, historyBase.Add(55*time.Minute)); err != nil {
		t.Fatalf("FinishInterval: %v", err)
	}
	if err := store.FinishSession(ctx, "sess_a", OutcomeCompleted, historyBase.Add(55*time.Minute), 2); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	sessions, err := store.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	got := sessions[0]
	if got.ID != "sess_a" {
		t.Errorf("ID = %q, want sess_a", got.ID)
	}
	if got.Outcome != OutcomeCompleted {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeCompleted)
	}
	if got.Completed != 2 {
		t.Errorf("Completed = %d, want 2", got.Completed)
	}
	if !got.StartedAt.Equal(historyBase) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, historyBase)
	}
	if got.FinishedAt == nil || !got.FinishedAt.Equal(historyBase.Add(55*time.Minute)) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, historyBase.Add(55*time.Minute))
	}
	if len(got.Schedule) != 2 || got.Schedule[0] != "work" || got.Schedule[1] != "short_break" {
		t.Errorf("Schedule = %v, want %v", got.Schedule, schedule)
	}

	if len(got.Intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(got.Intervals))
	}
	work := got.Intervals[0]
	if work.Index != 0 || work.Kind != "work" || work.Outcome != OutcomeCompleted {
		t.Errorf("interval 0 = %+v", work)
	}
	if work.PausedSeconds != 90 {
		t.Errorf("interval 0 PausedSeconds = %v, want 90", work.PausedSeconds)
	}
	if work.FinishedAt == nil || !work.FinishedAt.Equal(historyBase.Add(45*time.Minute)) {
		t.Errorf("interval 0 FinishedAt = %v", work.FinishedAt)
	}
	if got.Intervals[1].Kind != "short_break" {
		t.Errorf("interval 1 kind = %q, want short_break", got.Intervals[1].Kind)
	}
}

func TestStoreRecordsAbortedSession(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.StartSession(ctx, "sess_b", []string{"work", "short_break", "work"}, historyBase); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := store.StartInterval(ctx, "sess_b", 0, "work", historyBase); err != nil {
		t.Fatalf("StartInterval: %v", err)
	}
	if err := store.FinishInterval(ctx, "sess_b", 0, OutcomeCompleted, historyBase.Add(45*time.Minute)); err != nil {
		t.Fatalf("FinishInterval: %v", err)
	}
	if err := store.StartInterval(ctx, "sess_b", 1, "short_break", historyBase.Add(45*time.Minute)); err != nil {
		t.Fatalf("StartInterval: %v", err)
	}
	if err := store.FinishInterval(ctx, "sess_b", 1, OutcomeCancelled, historyBase.Add(47*time.Minute)); err != nil {
		t.Fatalf("FinishInterval: %v", err)
	}
	if err := store.FinishSession(ctx, "sess_b", OutcomeAborted, historyBase.Add(47*time.Minute), 1); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	sessions, err := store.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	got := sessions[0]
	if got.Outcome != OutcomeAborted {
		t.Errorf("Outcome = %q, want %q", got.Outcome, OutcomeAborted)
	}
	if got.Completed != 1 {
		t.Errorf("Completed = %d, want 1", got.Completed)
	}
	if len(got.Intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(got.Intervals))
	}
	if got.Intervals[1].Outcome != OutcomeCancelled {
		t.Errorf("interval 1 outcome = %q, want %q", got.Intervals[1].Outcome, OutcomeCancelled)
	}
}

func TestRecentSessionsOrdersNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"sess_1", "sess_2", "sess_3"} {
		startedAt := historyBase.Add(time.Duration(i) * time.Hour)
		if err := store.StartSession(ctx, id, []string{"work"}, startedAt); err != nil {
			t.Fatalf("StartSession %s: %v", id, err)
		}
	}

	sessions, err := store.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != "sess_3" || sessions[1].ID != "sess_2" {
		t.Errorf("order = [%s %s], want [sess_3 sess_2]", sessions[0].ID, sessions[1].ID)
	}

	// A session with no finish row yet reads back as running
	if sessions[0].Outcome != OutcomeRunning {
		t.Errorf("Outcome = %q, want %q", sessions[0].Outcome, OutcomeRunning)
	}
	if sessions[0].FinishedAt != nil {
		t.Errorf("FinishedAt = %v, want nil", sessions[0].FinishedAt)
	}
}

func TestRecentSessionsEmpty(t *testing.T) {
	store := setupTestStore(t)

	sessions, err := store.RecentSessions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("got %d sessions, want 0", len(sessions))
	}
}

func TestFinishMissingRowsReturnNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.FinishSession(ctx, "sess_none", OutcomeCompleted, historyBase, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("FinishSession error = %v, want ErrNotFound", err)
	}
	if err := store.FinishInterval(ctx, "sess_none", 0, OutcomeCompleted, historyBase); !errors.Is(err, ErrNotFound) {
		t.Errorf("FinishInterval error = %v, want ErrNotFound", err)
	}
	if err := store.AddIntervalPause(ctx, "sess_none", 0, 30); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddIntervalPause error = %v, want ErrNotFound", err)
	}
}
