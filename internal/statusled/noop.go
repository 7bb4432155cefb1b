package statusled

import "log/slog"

// noop implements Controller for hosts without a usable status LED.
type noop struct {
	logger *slog.Logger
}

// newNoop creates a controller that logs and discards every request.
func newNoop(logger *slog.Logger) *noop {
	return &noop{logger: logger}
}

// Set logs the request but performs no actual LED control.
func (n *noop) Set(enabled bool, pattern string) error {
	n.logger.Debug("Status LED not available (no-op)",
		"enabled", enabled,
		"pattern", pattern)
	return nil
}
