package pomodoro

import (
	"fmt"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
)

// Kind identifies the type of a schedule interval.
type Kind int

const (
	// Work is a focused work interval.
	Work Kind = iota
	// ShortBreak is the short rest between work intervals.
	ShortBreak
	// LongBreak is the long rest in the middle of a session.
	LongBreak
)

// Ring colors. Values sit on the hardware brightness scale where small
// numbers are already bright.
var (
	workColor       = board.RGB{R: 0, G: 0, B: 5}
	shortBreakColor = board.RGB{R: 0, G: 5, B: 0}
	longBreakColor  = board.RGB{R: 4, G: 1, B: 3}
	idleColor       = board.RGB{R: 0, G: 5, B: 0}
	cancelColor     = board.RGB{R: 10, G: 0, B: 0}
)

// String returns the kind tag used in config files, events and storage.
func (k Kind) String() string {
	switch k {
	case Work:
		return "work"
	case ShortBreak:
		return "short_break"
	case LongBreak:
		return "long_break"
	default:
		return "unknown"
	}
}

// Color returns the ring color shown while an interval of this kind runs.
func (k Kind) Color() board.RGB {
	switch k {
	case Work:
		return workColor
	case ShortBreak:
		return shortBreakColor
	case LongBreak:
		return longBreakColor
	default:
		return board.Off
	}
}

// ParseKind maps a config tag to a Kind. Both the full tags and the
// short w/sb/lb aliases are accepted.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "work", "w":
		return Work, nil
	case "short_break", "sb":
		return ShortBreak, nil
	case "long_break", "lb":
		return LongBreak, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
	}
}
