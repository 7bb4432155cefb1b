package pomodoro

import (
	"context"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
)

// pause blinks the frozen display until either button qualifies, then
// restores it. Returns the wall time spent paused so the caller can fold
// it back into the current pixel's budget. The display itself carries
// the blink phase: when the ring still matches the snapshot the next
// toggle darkens it, otherwise the toggle restores it.
func (e *Engine) pause(ctx context.Context, s *session, index int) (time.Duration, error) {
	start := e.clock.Now()
	snapshot := e.board.Pixels()
	lastBlink := start

	e.setStatus(func(st *Status) { st.State = StatePaused })
	e.logger.Info("Paused", "session_id", s.id, "index", index)
	e.bus.Publish(events.TimerPausedEvent{
		SessionID: s.id,
		Index:     index,
		PausedAt:  start,
	})

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		now := e.clock.Now()
		if now.Sub(lastBlink) > e.blinkPeriod {
			if e.board.Pixels() == snapshot {
				e.setAll(board.Frame{})
			} else {
				e.setAll(snapshot)
			}
			lastBlink = now
		}

		if e.debounce.SinglePress(board.ButtonA) {
			e.acceptPress(board.ButtonA)
			break
		}
		if e.debounce.SinglePress(board.ButtonB) {
			e.acceptPress(board.ButtonB)
			break
		}

		e.clock.Sleep(e.tickInterval)
	}

	e.setAll(snapshot)
	pausedFor := e.clock.Now().Sub(start)

	e.setStatus(func(st *Status) { st.State = StateRunning })
	e.logger.Info("Resumed",
		"session_id", s.id,
		"index", index,
		"paused_for", pausedFor)
	e.bus.Publish(events.TimerResumedEvent{
		SessionID: s.id,
		Index:     index,
		PausedFor: pausedFor,
	})
	return pausedFor, nil
}
