package pomodoro

import "errors"

// Configuration errors. Pauses, cancels and held buttons are ordinary
// control flow, not errors; the board collaborator is trusted.
var (
	// ErrInvalidDuration indicates a non-positive interval duration.
	ErrInvalidDuration = errors.New("interval duration must be positive")

	// ErrEmptySchedule indicates a schedule with no intervals.
	ErrEmptySchedule = errors.New("schedule must contain at least one interval")

	// ErrUnknownKind indicates an interval kind tag that is not
	// work, short_break or long_break.
	ErrUnknownKind = errors.New("unknown interval kind")

	// ErrUnknownOrientation indicates an orientation tag that is not
	// usb_down or usb_up.
	ErrUnknownOrientation = errors.New("unknown orientation")
)
