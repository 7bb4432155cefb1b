package board

import (
	"os"

	"golang.org/x/term"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

// New creates a board of the requested kind.
// Kind "auto" picks the simulator on an interactive terminal and falls
// back to the no-op board otherwise (systemd service, piped stdin).
func New(kind string, logger logging.Logger) Board {
	switch kind {
	case "sim":
		sim, err := NewSim(logger)
		if err != nil {
			if logger != nil {
				logger.Warn("Simulator unavailable, using no-op board", "error", err)
			}
			return newNoop(logger)
		}
		return sim

	case "noop":
		return newNoop(logger)

	default: // auto
		if term.IsTerminal(int(os.Stdin.Fd())) {
			if logger != nil {
				logger.Info("Interactive terminal detected, using simulator board")
			}
			if sim, err := NewSim(logger); err == nil {
				return sim
			}
		}
		if logger != nil {
			logger.Info("No interactive terminal, using no-op board")
		}
		return newNoop(logger)
	}
}
