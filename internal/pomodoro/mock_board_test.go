package pomodoro

import (
	"sync"
	"testing"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
)

// fakeBoard scripts the physical surface against the mock clock's
// virtual timeline. Button presses are windows of virtual time.
type fakeBoard struct {
	clock    *MockClock
	switchOn bool

	frame   board.Frame
	windows []pressWindow

	pixelWrites []pixelWrite
	frameWrites []frameWrite
	tones       []toneCall
}

type pressWindow struct {
	button   board.Button
	from, to time.Time // [from, to)
}

type pixelWrite struct {
	index int
	color board.RGB
	at    time.Time
}

type frameWrite struct {
	frame board.Frame
	at    time.Time
}

type toneCall struct {
	freq float64
	dur  time.Duration
	at   time.Time
}

func newFakeBoard(clock *MockClock) *fakeBoard {
	return &fakeBoard{clock: clock}
}

// press holds the button down for a window of virtual time.
func (f *fakeBoard) press(b board.Button, from time.Time, hold time.Duration) {
	f.windows = append(f.windows, pressWindow{button: b, from: from, to: from.Add(hold)})
}

func (f *fakeBoard) SetPixel(index int, color board.RGB) error {
	f.frame[index] = color
	f.pixelWrites = append(f.pixelWrites, pixelWrite{index: index, color: color, at: f.clock.Now()})
	return nil
}

func (f *fakeBoard) SetAll(frame board.Frame) error {
	f.frame = frame
	f.frameWrites = append(f.frameWrites, frameWrite{frame: frame, at: f.clock.Now()})
	return nil
}

func (f *fakeBoard) Pixels() board.Frame {
	return f.frame
}

func (f *fakeBoard) Pressed(b board.Button) bool {
	now := f.clock.Now()
	for _, w := range f.windows {
		if w.button == b && !now.Before(w.from) && now.Before(w.to) {
			return true
		}
	}
	return false
}

func (f *fakeBoard) SwitchOn() bool {
	return f.switchOn
}

func (f *fakeBoard) PlayTone(freqHz float64, d time.Duration) error {
	f.tones = append(f.tones, toneCall{freq: freqHz, dur: d, at: f.clock.Now()})
	return nil
}

func (f *fakeBoard) Close() error {
	f.frame = board.Frame{}
	return nil
}

// blankedOrder returns the pixel indexes blanked by SetPixel, in order.
func (f *fakeBoard) blankedOrder() []int {
	var order []int
	for _, w := range f.pixelWrites {
		if w.color == board.Off {
			order = append(order, w.index)
		}
	}
	return order
}

// eventCollector gathers bus events for assertions. Delivery is
// asynchronous, so tests sleep briefly before reading and only assert
// order within one event type.
type eventCollector struct {
	mu sync.Mutex

	sessionStarted   []events.SessionStartedEvent
	sessionCompleted []events.SessionCompletedEvent
	sessionAborted   []events.SessionAbortedEvent
	intervalStarted  []events.IntervalStartedEvent
	intervalDone     []events.IntervalCompletedEvent
	intervalGone     []events.IntervalCancelledEvent
	paused           []events.TimerPausedEvent
	resumed          []events.TimerResumedEvent
	presses          []events.PressAcceptedEvent
	reloads          []events.SettingsReloadedEvent
}

func collectEvents(bus *events.Bus) *eventCollector {
	c := &eventCollector{}
	bus.Subscribe(func(e events.SessionStartedEvent) {
		c.mu.Lock()
		c.sessionStarted = append(c.sessionStarted, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.SessionCompletedEvent) {
		c.mu.Lock()
		c.sessionCompleted = append(c.sessionCompleted, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.SessionAbortedEvent) {
		c.mu.Lock()
		c.sessionAborted = append(c.sessionAborted, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.IntervalStartedEvent) {
		c.mu.Lock()
		c.intervalStarted = append(c.intervalStarted, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.IntervalCompletedEvent) {
		c.mu.Lock()
		c.intervalDone = append(c.intervalDone, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.IntervalCancelledEvent) {
		c.mu.Lock()
		c.intervalGone = append(c.intervalGone, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.TimerPausedEvent) {
		c.mu.Lock()
		c.paused = append(c.paused, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.TimerResumedEvent) {
		c.mu.Lock()
		c.resumed = append(c.resumed, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.PressAcceptedEvent) {
		c.mu.Lock()
		c.presses = append(c.presses, e)
		c.mu.Unlock()
	})
	bus.Subscribe(func(e events.SettingsReloadedEvent) {
		c.mu.Lock()
		c.reloads = append(c.reloads, e)
		c.mu.Unlock()
	})
	return c
}

// settle waits out the bus dispatch latency.
func (c *eventCollector) settle() {
	time.Sleep(100 * time.Millisecond)
}

// testBase is the virtual timeline origin shared by the engine tests.
var testBase = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

// fastSettings is a scaled-down configuration so scenarios stay short on
// the virtual timeline: one second of work means one pixel per 100 ms.
func fastSettings() Settings {
	return Settings{
		Work:        time.Second,
		ShortBreak:  500 * time.Millisecond,
		LongBreak:   800 * time.Millisecond,
		Schedule:    []Kind{Work},
		Orientation: USBDown,
	}
}

// newTestEngine wires an engine to a fake board and mock clock.
func newTestEngine(t *testing.T, settings Settings) (*Engine, *fakeBoard, *MockClock, *events.Bus) {
	t.Helper()
	clock := &MockClock{CurrentTime: testBase}
	fb := newFakeBoard(clock)
	bus := events.New()
	e, err := New(fb, clock, bus, settings)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return e, fb, clock, bus
}
