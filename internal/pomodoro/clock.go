package pomodoro

import "time"

// Clock interface abstracts time operations for testing
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Sleep blocks the calling goroutine for the given duration
	Sleep(d time.Duration)
}

// RealClock implements Clock using the real system time
type RealClock struct{}

// Now returns the current time
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep calls time.Sleep
func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// MockClock implements Clock for testing. Sleep advances the virtual
// time instead of blocking, so loops that wait on the clock run at full
// speed on a deterministic timeline.
type MockClock struct {
	CurrentTime time.Time

	// SleepHook, when set, runs after every Sleep with the slept
	// duration. Tests use it to cancel contexts at a virtual deadline.
	SleepHook func(d time.Duration)
}

// Now returns the mocked current time
func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Sleep advances the mocked time by d without blocking
func (m *MockClock) Sleep(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
	if m.SleepHook != nil {
		m.SleepHook(d)
	}
}

// Advance moves the mocked time forward by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// Set sets the mocked current time to a specific value
func (m *MockClock) Set(t time.Time) {
	m.CurrentTime = t
}

// Ensure implementations satisfy the interface
var (
	_ Clock = RealClock{}
	_ Clock = (*MockClock)(nil)
)
