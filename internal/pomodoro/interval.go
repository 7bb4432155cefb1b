package pomodoro

import (
	"context"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
)

// Outcome is the result of one interval or one whole session.
type Outcome int

const (
	// Completed means the full duration ran down.
	Completed Outcome = iota
	// Cancelled means button B ended it early.
	Cancelled
)

// String returns the outcome tag used in events and storage.
func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}
	return "completed"
}

// runInterval counts one interval down across the ring. The whole ring
// lights in the kind's color, then pixels blank one by one from the
// orientation's start pixel toward its stop pixel, each after a tenth of
// the duration has elapsed.
//
// Within a tick at most one thing happens, in this order: an overdue
// pixel advance, else a qualifying cancel press, else a qualifying pause
// press. The returned error is non-nil only when ctx was cancelled; the
// interval then ends without an outcome.
func (e *Engine) runInterval(ctx context.Context, s *session, index int, kind Kind, duration time.Duration) (Outcome, error) {
	ledDuration := duration / board.NumPixels

	frame := board.Frame{}
	for i := range frame {
		frame[i] = kind.Color()
	}
	e.setAll(frame)

	current := s.startLED
	ledStart := e.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return Cancelled, err
		}

		now := e.clock.Now()
		switch {
		case now.Sub(ledStart) > ledDuration:
			e.setPixel(current, board.Off)
			if current == s.stopLED {
				e.playCompletionTone()
				return Completed, nil
			}
			current = mod(current-1, board.NumPixels)
			ledStart = now

		case e.debounce.SinglePress(board.ButtonB):
			e.acceptPress(board.ButtonB)
			e.flashCancel()
			return Cancelled, nil

		case e.debounce.SinglePress(board.ButtonA):
			e.acceptPress(board.ButtonA)
			pausedFor, err := e.pause(ctx, s, index)
			if err != nil {
				return Cancelled, err
			}
			// The current pixel keeps the budget it had before the pause.
			ledStart = ledStart.Add(pausedFor)
		}

		e.clock.Sleep(e.tickInterval)
	}
}

// flashCancel acknowledges a cancel press: red pulses across the whole
// ring, then dark. Deliberately uninterruptible.
func (e *Engine) flashCancel() {
	red := board.Frame{}
	for i := range red {
		red[i] = cancelColor
	}
	for i := 0; i < cancelFlashes; i++ {
		e.setAll(red)
		e.clock.Sleep(cancelFlashOn)
		e.setAll(board.Frame{})
		e.clock.Sleep(cancelFlashOff)
	}
}

// playCompletionTone sounds the tone when the slide switch allows it.
// The switch is read at completion time, not cached.
func (e *Engine) playCompletionTone() {
	if !e.board.SwitchOn() {
		return
	}
	if err := e.board.PlayTone(toneFrequency, toneDuration); err != nil {
		e.logger.Warn("Tone failed", "error", err)
	}
}
