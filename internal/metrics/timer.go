// Package metrics provides Prometheus metrics for timer activity.
package metrics

import (
	"maps"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "session",
		Name:      "started_total",
		Help:      "Total sessions started",
	})

	sessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "session",
		Name:      "completed_total",
		Help:      "Total sessions that ran their full schedule",
	})

	sessionsAborted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "session",
		Name:      "aborted_total",
		Help:      "Total sessions cancelled before the schedule finished",
	})

	intervalsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "interval",
		Name:      "completed_total",
		Help:      "Total intervals run to the end of their duration",
	}, []string{"kind"})

	intervalsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "interval",
		Name:      "cancelled_total",
		Help:      "Total intervals cut short by a cancel press",
	}, []string{"kind"})

	intervalPauses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "interval",
		Name:      "pauses_total",
		Help:      "Total times a running interval was paused",
	})

	intervalPausedSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "interval",
		Name:      "paused_seconds_total",
		Help:      "Total seconds intervals spent paused",
	})

	intervalIndex = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "interval",
		Name:      "index",
		Help:      "Schedule position of the running interval, -1 when idle",
	})

	buttonPresses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "input",
		Name:      "presses_total",
		Help:      "Debounced button presses accepted by the engine",
	}, []string{"button"})

	engineState = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "engine",
		Name:      "state",
		Help:      "Engine state: 0 idle, 1 running, 2 paused",
	})

	settingsReloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cpxpomodoro",
		Subsystem: "engine",
		Name:      "settings_reloads_total",
		Help:      "Total settings reloads applied between sessions",
	})

	// Local cache for API stats access.
	totals = TimerTotals{
		IntervalsCompleted: make(map[string]int64),
		IntervalsCancelled: make(map[string]int64),
		Presses:            make(map[string]int64),
	}
	totalsMu sync.RWMutex
)

// Engine state gauge values.
const (
	StateIdle    float64 = 0
	StateRunning float64 = 1
	StatePaused  float64 = 2
)

// TimerTotals holds lifetime counts for the current process. The
// per-kind and per-button maps use the wire tags ("work", "A", ...)
// as keys.
type TimerTotals struct {
	SessionsStarted    int64
	SessionsCompleted  int64
	SessionsAborted    int64
	IntervalsCompleted map[string]int64
	IntervalsCancelled map[string]int64
	Pauses             int64
	PausedSeconds      float64
	Presses            map[string]int64
	SettingsReloads    int64
}

// IncSessionStarted counts a session start.
func IncSessionStarted() {
	sessionsStarted.Inc()
	updateTotals(func(t *TimerTotals) { t.SessionsStarted++ })
}

// IncSessionCompleted counts a session that ran its full schedule.
func IncSessionCompleted() {
	sessionsCompleted.Inc()
	updateTotals(func(t *TimerTotals) { t.SessionsCompleted++ })
}

// IncSessionAborted counts a session ended by a cancel press.
func IncSessionAborted() {
	sessionsAborted.Inc()
	updateTotals(func(t *TimerTotals) { t.SessionsAborted++ })
}

// IncIntervalCompleted counts a completed interval of the given kind.
func IncIntervalCompleted(kind string) {
	intervalsCompleted.WithLabelValues(kind).Inc()
	updateTotals(func(t *TimerTotals) { t.IntervalsCompleted[kind]++ })
}

// IncIntervalCancelled counts a cancelled interval of the given kind.
func IncIntervalCancelled(kind string) {
	intervalsCancelled.WithLabelValues(kind).Inc()
	updateTotals(func(t *TimerTotals) { t.IntervalsCancelled[kind]++ })
}

// IncPause counts a pause of a running interval.
func IncPause() {
	intervalPauses.Inc()
	updateTotals(func(t *TimerTotals) { t.Pauses++ })
}

// AddPausedSeconds accumulates time spent paused.
func AddPausedSeconds(seconds float64) {
	intervalPausedSeconds.Add(seconds)
	updateTotals(func(t *TimerTotals) { t.PausedSeconds += seconds })
}

// IncPress counts an accepted press on the given button.
func IncPress(button string) {
	buttonPresses.WithLabelValues(button).Inc()
	updateTotals(func(t *TimerTotals) { t.Presses[button]++ })
}

// IncSettingsReload counts a settings reload applied at idle.
func IncSettingsReload() {
	settingsReloads.Inc()
	updateTotals(func(t *TimerTotals) { t.SettingsReloads++ })
}

// SetEngineState sets the engine state gauge.
func SetEngineState(state float64) {
	engineState.Set(state)
}

// SetIntervalIndex sets the running interval index gauge. Pass -1 when
// no interval is running.
func SetIntervalIndex(index int) {
	intervalIndex.Set(float64(index))
}

// GetTimerTotals returns a copy of the lifetime counters.
func GetTimerTotals() TimerTotals {
	totalsMu.RLock()
	defer totalsMu.RUnlock()
	dup := totals
	dup.IntervalsCompleted = maps.Clone(totals.IntervalsCompleted)
	dup.IntervalsCancelled = maps.Clone(totals.IntervalsCancelled)
	dup.Presses = maps.Clone(totals.Presses)
	return dup
}

func updateTotals(update func(*TimerTotals)) {
	totalsMu.Lock()
	defer totalsMu.Unlock()
	update(&totals)
}
