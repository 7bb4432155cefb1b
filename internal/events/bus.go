package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers
// Usage: bus.Publish(SessionStartedEvent{...})
func (b *Bus) Publish(ev Event) {
	// Use type switch to call the generic Publish with the correct type
	switch e := ev.(type) {
	case SessionStartedEvent:
		event.Publish(b.dispatcher, e)
	case SessionCompletedEvent:
		event.Publish(b.dispatcher, e)
	case SessionAbortedEvent:
		event.Publish(b.dispatcher, e)
	case IntervalStartedEvent:
		event.Publish(b.dispatcher, e)
	case IntervalCompletedEvent:
		event.Publish(b.dispatcher, e)
	case IntervalCancelledEvent:
		event.Publish(b.dispatcher, e)
	case TimerPausedEvent:
		event.Publish(b.dispatcher, e)
	case TimerResumedEvent:
		event.Publish(b.dispatcher, e)
	case PressAcceptedEvent:
		event.Publish(b.dispatcher, e)
	case SettingsReloadedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function
// The handler type determines which events it receives (type inference)
// Returns an unsubscribe function
// Usage: unsub := bus.Subscribe(func(e SessionCompletedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(SessionStartedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SessionCompletedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SessionAbortedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(IntervalStartedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(IntervalCompletedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(IntervalCancelledEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(TimerPausedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(TimerResumedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PressAcceptedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(SettingsReloadedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		// Return a no-op function if handler type is not recognized
		return func() {}
	}
}
