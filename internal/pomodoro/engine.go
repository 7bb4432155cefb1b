// Package pomodoro implements the interval timer core: debounced button
// input, the tick-driven interval runner with its pause sub-loop, the
// schedule engine and the idle animation.
//
// The core is single threaded. All waiting goes through the injected
// Clock at a fixed tick cadence, so tests can drive every loop on a
// virtual timeline. Observers (metrics, history, the status API) sit
// outside on the event bus and a mutex-guarded snapshot; they observe
// the engine, never steer it.
package pomodoro

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

const (
	// DefaultTickInterval is the poll cadence of every engine loop.
	DefaultTickInterval = 10 * time.Millisecond

	// defaultIdleUpdate is the idle animation step period.
	defaultIdleUpdate = 500 * time.Millisecond

	// defaultBlinkPeriod is the pause blink half-period.
	defaultBlinkPeriod = 300 * time.Millisecond

	// Completion tone.
	toneFrequency = 1720.0
	toneDuration  = 100 * time.Millisecond

	// Cancellation flash: red pulses across the whole ring.
	cancelFlashes  = 2
	cancelFlashOn  = 200 * time.Millisecond
	cancelFlashOff = 100 * time.Millisecond
)

// Engine owns the board and runs the timer state machine.
type Engine struct {
	board    board.Board
	clock    Clock
	bus      *events.Bus
	logger   *slog.Logger
	debounce *Debouncer

	tickInterval time.Duration
	idleUpdate   time.Duration
	blinkPeriod  time.Duration

	mu       sync.Mutex
	settings Settings
	staged   *Settings
	status   Status
}

// New creates an engine over the given collaborators. The settings are
// validated and frozen as the first active snapshot.
func New(b board.Board, clock Clock, bus *events.Bus, settings Settings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("timer settings: %w", err)
	}
	return &Engine{
		board:        b,
		clock:        clock,
		bus:          bus,
		logger:       logging.GetLogger("engine"),
		debounce:     NewDebouncer(b, clock, DefaultSensitivity),
		tickInterval: DefaultTickInterval,
		idleUpdate:   defaultIdleUpdate,
		blinkPeriod:  defaultBlinkPeriod,
		settings:     settings.clone(),
		status:       Status{State: StateIdle},
	}, nil
}

// Run drives the engine: idle animation until button A qualifies, then
// the session schedule, then idle again. Returns the context's error
// when ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	settings := e.Settings()
	e.logger.Info("Engine running",
		"schedule", settings.ScheduleTags(),
		"orientation", settings.Orientation.String())

	for {
		if err := e.runIdle(ctx); err != nil {
			return err
		}
		if _, err := e.runSession(ctx); err != nil {
			return err
		}
	}
}

// runIdle steps the idle animation until a qualifying press of button A.
// One idle pixel walks backward around the ring. Staged settings are
// applied here, never while a session runs.
func (e *Engine) runIdle(ctx context.Context) error {
	e.setStatus(func(st *Status) {
		*st = Status{State: StateIdle}
	})

	idx := 0
	e.setPixel(idx, idleColor)
	last := e.clock.Now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.applyStagedSettings()

		if e.debounce.SinglePress(board.ButtonA) {
			e.acceptPress(board.ButtonA)
			return nil
		}

		now := e.clock.Now()
		if now.Sub(last) > e.idleUpdate {
			e.setPixel(idx, board.Off)
			idx = mod(idx-1, board.NumPixels)
			e.setPixel(idx, idleColor)
			last = now
		}

		e.clock.Sleep(e.tickInterval)
	}
}

// StageSettings validates a new snapshot and stages it for the next
// idle. A running session keeps the snapshot it started with.
func (e *Engine) StageSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	staged := s.clone()
	e.mu.Lock()
	e.staged = &staged
	e.mu.Unlock()

	e.logger.Info("Settings staged",
		"work", s.Work,
		"short_break", s.ShortBreak,
		"long_break", s.LongBreak,
		"schedule", s.ScheduleTags())
	return nil
}

// applyStagedSettings swaps in a staged snapshot. Called from idle only.
func (e *Engine) applyStagedSettings() {
	e.mu.Lock()
	if e.staged == nil {
		e.mu.Unlock()
		return
	}
	s := *e.staged
	e.staged = nil
	e.settings = s
	e.mu.Unlock()

	e.logger.Info("Settings applied",
		"work", s.Work,
		"short_break", s.ShortBreak,
		"long_break", s.LongBreak)
	e.bus.Publish(events.SettingsReloadedEvent{
		Work:       s.Work,
		ShortBreak: s.ShortBreak,
		LongBreak:  s.LongBreak,
	})
}

// acceptPress records a qualifying press for observers.
func (e *Engine) acceptPress(b board.Button) {
	e.bus.Publish(events.PressAcceptedEvent{
		Button: b.String(),
		At:     e.clock.Now(),
	})
}

// setPixel writes one pixel. Display errors are logged, not returned:
// a flaky ring must not stop the timer.
func (e *Engine) setPixel(index int, c board.RGB) {
	if err := e.board.SetPixel(index, c); err != nil {
		e.logger.Warn("Pixel write failed", "index", index, "error", err)
	}
}

// setAll writes the whole ring, logging instead of failing.
func (e *Engine) setAll(f board.Frame) {
	if err := e.board.SetAll(f); err != nil {
		e.logger.Warn("Ring write failed", "error", err)
	}
}

// mod is the positive modulus used for ring arithmetic.
func mod(n, m int) int {
	return ((n % m) + m) % m
}
