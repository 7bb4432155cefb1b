package board

import (
	"fmt"
	"sync"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

// noop implements Board for systems without any usable surface. Pixel
// writes are tracked in memory so status reporting still works; buttons
// and the switch read as released and off.
type noop struct {
	logger logging.Logger

	mu    sync.Mutex
	frame Frame
}

// newNoop creates a new no-op board.
func newNoop(logger logging.Logger) *noop {
	return &noop{logger: logger}
}

// SetPixel records the pixel color but drives no hardware.
func (n *noop) SetPixel(index int, color RGB) error {
	if index < 0 || index >= NumPixels {
		return fmt.Errorf("pixel index %d out of range [0, %d)", index, NumPixels)
	}
	n.mu.Lock()
	n.frame[index] = color
	n.mu.Unlock()
	return nil
}

// SetAll records the frame but drives no hardware.
func (n *noop) SetAll(frame Frame) error {
	n.mu.Lock()
	n.frame = frame
	n.mu.Unlock()
	return nil
}

// Pixels returns the last recorded frame.
func (n *noop) Pixels() Frame {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.frame
}

// Pressed always reports released.
func (n *noop) Pressed(b Button) bool {
	return false
}

// SwitchOn always reports off.
func (n *noop) SwitchOn() bool {
	return false
}

// PlayTone logs the request but makes no sound.
func (n *noop) PlayTone(freqHz float64, d time.Duration) error {
	n.logger.Debug("Tone not available (no-op board)",
		"freq_hz", freqHz,
		"duration", d)
	return nil
}

// Close blanks the recorded frame.
func (n *noop) Close() error {
	n.mu.Lock()
	n.frame = Frame{}
	n.mu.Unlock()
	return nil
}
