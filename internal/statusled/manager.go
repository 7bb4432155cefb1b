package statusled

import (
	"log/slog"
	"sync"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

// Engine states the LED distinguishes.
const (
	stateIdle    = "idle"
	stateRunning = "running"
	statePaused  = "paused"
)

// Manager subscribes to timer events and keeps the status LED in step
// with the engine: heartbeat while idle, solid while an interval runs,
// blink while paused.
type Manager struct {
	controller    Controller
	eventBus      *events.Bus
	logger        *slog.Logger
	mu            sync.Mutex
	unsubscribers []func()
}

// NewManager creates a manager that reacts to session lifecycle events.
func NewManager(controller Controller, eventBus *events.Bus) *Manager {
	return &Manager{
		controller: controller,
		eventBus:   eventBus,
		logger:     logging.GetLogger("statusled"),
	}
}

// Start subscribes to the bus and puts the LED in the idle pattern.
func (m *Manager) Start() {
	m.unsubscribers = []func(){
		m.eventBus.Subscribe(func(events.SessionStartedEvent) { m.apply(stateRunning) }),
		m.eventBus.Subscribe(func(events.SessionCompletedEvent) { m.apply(stateIdle) }),
		m.eventBus.Subscribe(func(events.SessionAbortedEvent) { m.apply(stateIdle) }),
		m.eventBus.Subscribe(func(events.TimerPausedEvent) { m.apply(statePaused) }),
		m.eventBus.Subscribe(func(events.TimerResumedEvent) { m.apply(stateRunning) }),
	}

	m.apply(stateIdle)
	m.logger.Info("Status LED manager started")
}

// Stop unsubscribes from events and hands the LED back to the system.
func (m *Manager) Stop() {
	for _, unsub := range m.unsubscribers {
		unsub()
	}
	m.unsubscribers = nil

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.controller.Set(false, "none"); err != nil {
		m.logger.Warn("Failed to release status LED", "error", err)
	}
	m.logger.Info("Status LED manager stopped")
}

// apply maps an engine state onto an LED pattern. Different event types
// arrive on different goroutines; the lock serializes the sysfs writes.
func (m *Manager) apply(state string) {
	pattern := PatternHeartbeat
	switch state {
	case stateRunning:
		pattern = PatternSolid
	case statePaused:
		pattern = PatternBlink
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.controller.Set(true, pattern); err != nil {
		m.logger.Warn("Failed to update status LED", "state", state, "error", err)
		return
	}
	m.logger.Debug("Status LED updated", "state", state, "pattern", pattern)
}
