package pomodoro

import (
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
)

// DefaultSensitivity is the minimum spacing between qualifying presses
// on one button.
const DefaultSensitivity = 250 * time.Millisecond

// Debouncer turns the raw button levels into discrete presses.
//
// It is a minimum-interval throttle, not an edge detector: a press
// qualifies whenever the raw level is high and more than the sensitivity
// window has passed since the last qualifying press on that channel.
// A button held longer than the window therefore re-fires; with the
// stock window a hold acts roughly four times per second. Channels start
// saturated, so nothing qualifies within the first window after
// construction.
type Debouncer struct {
	board       board.Board
	clock       Clock
	sensitivity time.Duration
	lastTrigger map[board.Button]time.Time
}

// NewDebouncer creates a debouncer over the board's two buttons.
func NewDebouncer(b board.Board, clock Clock, sensitivity time.Duration) *Debouncer {
	now := clock.Now()
	return &Debouncer{
		board:       b,
		clock:       clock,
		sensitivity: sensitivity,
		lastTrigger: map[board.Button]time.Time{
			board.ButtonA: now,
			board.ButtonB: now,
		},
	}
}

// SinglePress reports whether the current raw level on b counts as a new
// press. A released button never qualifies and leaves the channel's
// timestamp untouched. A qualifying press consumes the channel for one
// sensitivity window.
func (d *Debouncer) SinglePress(b board.Button) bool {
	if !d.board.Pressed(b) {
		return false
	}
	now := d.clock.Now()
	if now.Sub(d.lastTrigger[b]) > d.sensitivity {
		d.lastTrigger[b] = now
		return true
	}
	return false
}
