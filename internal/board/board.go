// Package board abstracts the timer's physical surface: a ring of ten RGB
// pixels, two momentary push buttons, a slide switch and a speaker.
//
// Implementations cover the terminal simulator and a no-op fallback for
// headless use. Real hardware backends plug in behind the same interface.
package board

import "time"

// NumPixels is the number of pixels on the ring.
const NumPixels = 10

// RGB is a pixel color. Channel values follow the hardware brightness
// scale where small values are already bright; the stock palette stays
// below 16 per channel.
type RGB struct {
	R, G, B uint8
}

// Off is the blanked pixel color.
var Off = RGB{}

// Frame holds one color per ring pixel. Index 0 sits next to the USB
// connector and indices increase counterclockwise when the USB port
// points up.
type Frame [NumPixels]RGB

// Button identifies one of the two momentary push buttons.
type Button int

const (
	// ButtonA starts a session and pauses a running interval.
	ButtonA Button = iota
	// ButtonB cancels a running session.
	ButtonB
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	default:
		return "unknown"
	}
}

// Board abstracts the physical surface across real hardware and the
// terminal simulator. Reads are instantaneous snapshots; writes update
// the visible state before returning.
type Board interface {
	// SetPixel sets one ring pixel. Index must be in [0, NumPixels).
	SetPixel(index int, color RGB) error

	// SetAll replaces the whole ring in one update.
	SetAll(frame Frame) error

	// Pixels returns the currently displayed frame.
	Pixels() Frame

	// Pressed reports whether the button is currently held down.
	Pressed(b Button) bool

	// SwitchOn reports the slide switch position.
	SwitchOn() bool

	// PlayTone sounds the speaker at the given frequency. Implementations
	// may block for up to the duration.
	PlayTone(freqHz float64, d time.Duration) error

	// Close blanks the ring and releases the underlying device.
	Close() error
}
