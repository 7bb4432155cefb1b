package metrics

import (
	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
)

// Recorder mirrors timer events from the bus into the Prometheus
// registry. It observes only; the engine never waits on it.
type Recorder struct {
	unsubscribers []func()
}

// NewRecorder subscribes to the bus and keeps the exported metrics
// current until Close is called.
func NewRecorder(bus *events.Bus) *Recorder {
	SetEngineState(StateIdle)
	SetIntervalIndex(-1)

	r := &Recorder{}
	r.unsubscribers = []func(){
		bus.Subscribe(func(_ events.SessionStartedEvent) {
			IncSessionStarted()
			SetEngineState(StateRunning)
		}),
		bus.Subscribe(func(_ events.SessionCompletedEvent) {
			IncSessionCompleted()
			SetEngineState(StateIdle)
			SetIntervalIndex(-1)
		}),
		bus.Subscribe(func(_ events.SessionAbortedEvent) {
			IncSessionAborted()
			SetEngineState(StateIdle)
			SetIntervalIndex(-1)
		}),
		bus.Subscribe(func(e events.IntervalStartedEvent) {
			SetIntervalIndex(e.Index)
		}),
		bus.Subscribe(func(e events.IntervalCompletedEvent) {
			IncIntervalCompleted(e.Kind)
		}),
		bus.Subscribe(func(e events.IntervalCancelledEvent) {
			IncIntervalCancelled(e.Kind)
		}),
		bus.Subscribe(func(_ events.TimerPausedEvent) {
			IncPause()
			SetEngineState(StatePaused)
		}),
		bus.Subscribe(func(e events.TimerResumedEvent) {
			AddPausedSeconds(e.PausedFor.Seconds())
			SetEngineState(StateRunning)
		}),
		bus.Subscribe(func(e events.PressAcceptedEvent) {
			IncPress(e.Button)
		}),
		bus.Subscribe(func(_ events.SettingsReloadedEvent) {
			IncSettingsReload()
		}),
	}
	return r
}

// Close detaches the recorder from the bus.
func (r *Recorder) Close() {
	for _, unsub := range r.unsubscribers {
		unsub()
	}
	r.unsubscribers = nil
}
