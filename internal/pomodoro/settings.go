package pomodoro

import (
	"fmt"
	"time"
)

// Default interval durations.
const (
	DefaultWork       = 45 * time.Minute
	DefaultShortBreak = 10 * time.Minute
	DefaultLongBreak  = 20 * time.Minute
)

// DefaultSchedule returns the stock session layout: four work intervals
// with the long break in the middle and short breaks around it.
func DefaultSchedule() []Kind {
	return []Kind{Work, ShortBreak, Work, LongBreak, Work, ShortBreak, Work}
}

// Orientation tells the engine which way the board hangs, which fixes
// the pixels the countdown starts and stops at.
type Orientation int

const (
	// USBDown hangs the board with the USB connector at the bottom.
	USBDown Orientation = iota
	// USBUp hangs the board with the USB connector at the top.
	USBUp
)

// String returns the orientation tag used in config files.
func (o Orientation) String() string {
	if o == USBUp {
		return "usb_up"
	}
	return "usb_down"
}

// startLED is the first pixel of the countdown for this orientation.
func (o Orientation) startLED() int {
	if o == USBDown {
		return 4
	}
	return 9
}

// stopLED is the last pixel blanked before an interval completes.
func (o Orientation) stopLED() int {
	if o == USBDown {
		return 5
	}
	return 0
}

// ParseOrientation maps a config tag to an Orientation.
func ParseOrientation(tag string) (Orientation, error) {
	switch tag {
	case "usb_down":
		return USBDown, nil
	case "usb_up":
		return USBUp, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOrientation, tag)
	}
}

// Settings is a validated snapshot of the timer configuration. The
// engine freezes one snapshot per session; changes made while a session
// runs are staged and applied at the next idle.
type Settings struct {
	Work        time.Duration
	ShortBreak  time.Duration
	LongBreak   time.Duration
	Schedule    []Kind
	Orientation Orientation
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		Work:        DefaultWork,
		ShortBreak:  DefaultShortBreak,
		LongBreak:   DefaultLongBreak,
		Schedule:    DefaultSchedule(),
		Orientation: USBDown,
	}
}

// Duration returns the configured duration for an interval kind.
func (s Settings) Duration(k Kind) time.Duration {
	switch k {
	case Work:
		return s.Work
	case ShortBreak:
		return s.ShortBreak
	case LongBreak:
		return s.LongBreak
	default:
		return 0
	}
}

// Minutes returns a duration rounded down to whole minutes, the unit the
// config surface speaks.
func Minutes(d time.Duration) int {
	return int(d / time.Minute)
}

// Validate checks that every duration is positive and the schedule is a
// non-empty list of known kinds.
func (s Settings) Validate() error {
	if s.Work <= 0 {
		return fmt.Errorf("%w: work %v", ErrInvalidDuration, s.Work)
	}
	if s.ShortBreak <= 0 {
		return fmt.Errorf("%w: short break %v", ErrInvalidDuration, s.ShortBreak)
	}
	if s.LongBreak <= 0 {
		return fmt.Errorf("%w: long break %v", ErrInvalidDuration, s.LongBreak)
	}
	if len(s.Schedule) == 0 {
		return ErrEmptySchedule
	}
	for i, k := range s.Schedule {
		switch k {
		case Work, ShortBreak, LongBreak:
		default:
			return fmt.Errorf("%w: schedule entry %d", ErrUnknownKind, i)
		}
	}
	return nil
}

// ScheduleTags returns the schedule as config-style tags.
func (s Settings) ScheduleTags() []string {
	tags := make([]string, len(s.Schedule))
	for i, k := range s.Schedule {
		tags[i] = k.String()
	}
	return tags
}

// clone returns a deep copy so a staged snapshot cannot alias the
// caller's schedule slice.
func (s Settings) clone() Settings {
	out := s
	out.Schedule = make([]Kind, len(s.Schedule))
	copy(out.Schedule, s.Schedule)
	return out
}
