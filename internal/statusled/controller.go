// Package statusled mirrors the engine state on the host board's own
// case LED, so a headless unit shows at a glance whether a session is
// running. The pixel ring stays the primary display; this is the
// one-bit summary next to it.
package statusled

// LED patterns understood by every controller.
const (
	// PatternSolid keeps the LED steadily on.
	PatternSolid = "solid"
	// PatternBlink blinks the LED at the kernel heartbeat rate.
	PatternBlink = "blink"
	// PatternHeartbeat is the double-pulse heartbeat trigger.
	PatternHeartbeat = "heartbeat"
)

// Controller drives the single status LED through whatever mechanism
// the host exposes.
type Controller interface {
	// Set turns the LED on or off. Pattern selects how the LED behaves
	// while on; an empty pattern leaves the current trigger untouched.
	Set(enabled bool, pattern string) error
}
