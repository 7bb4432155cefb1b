package pomodoro

import (
	"context"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/idgen"
)

// session carries the state frozen for one schedule run.
type session struct {
	id        string
	startLED  int
	stopLED   int
	startedAt time.Time
}

// runSession runs the frozen schedule back to back. One cancelled
// interval aborts the whole session; the remaining entries never run.
// The returned error is non-nil only when ctx was cancelled mid-session;
// the session then ends without a recorded outcome.
func (e *Engine) runSession(ctx context.Context) (Outcome, error) {
	settings := e.Settings()
	s := &session{
		id:        idgen.NewSession(),
		startLED:  settings.Orientation.startLED(),
		stopLED:   settings.Orientation.stopLED(),
		startedAt: e.clock.Now(),
	}

	logger := e.logger.With("session_id", s.id)
	logger.Info("Session started", "schedule", settings.ScheduleTags())
	e.setStatus(func(st *Status) {
		*st = Status{
			State:          StateRunning,
			SessionID:      s.id,
			IntervalCount:  len(settings.Schedule),
			SessionStarted: s.startedAt,
		}
	})
	e.bus.Publish(events.SessionStartedEvent{
		SessionID: s.id,
		Schedule:  settings.ScheduleTags(),
		StartedAt: s.startedAt,
	})

	completed := 0
	for i, kind := range settings.Schedule {
		duration := settings.Duration(kind)
		e.setStatus(func(st *Status) {
			st.State = StateRunning
			st.IntervalIndex = i
			st.IntervalKind = kind.String()
		})
		logger.Info("Interval started",
			"index", i,
			"kind", kind.String(),
			"duration", duration)
		e.bus.Publish(events.IntervalStartedEvent{
			SessionID: s.id,
			Index:     i,
			Kind:      kind.String(),
			Duration:  duration,
			StartedAt: e.clock.Now(),
		})

		outcome, err := e.runInterval(ctx, s, i, kind, duration)
		if err != nil {
			return outcome, err
		}

		if outcome == Cancelled {
			finishedAt := e.clock.Now()
			logger.Info("Interval cancelled", "index", i, "kind", kind.String())
			e.bus.Publish(events.IntervalCancelledEvent{
				SessionID:  s.id,
				Index:      i,
				Kind:       kind.String(),
				FinishedAt: finishedAt,
			})

			logger.Info("Session aborted",
				"completed_intervals", completed,
				"at_index", i)
			e.bus.Publish(events.SessionAbortedEvent{
				SessionID:  s.id,
				StartedAt:  s.startedAt,
				FinishedAt: finishedAt,
				Completed:  completed,
				AtIndex:    i,
			})
			return Cancelled, nil
		}

		completed++
		logger.Info("Interval completed", "index", i, "kind", kind.String())
		e.bus.Publish(events.IntervalCompletedEvent{
			SessionID:  s.id,
			Index:      i,
			Kind:       kind.String(),
			FinishedAt: e.clock.Now(),
		})
	}

	finishedAt := e.clock.Now()
	logger.Info("Session completed", "intervals", completed)
	e.bus.Publish(events.SessionCompletedEvent{
		SessionID:  s.id,
		StartedAt:  s.startedAt,
		FinishedAt: finishedAt,
		Intervals:  completed,
	})
	return Completed, nil
}
