package statusled

import (
	"fmt"
	"os"
	"path/filepath"
)

const sysfsLEDPath = "/sys/class/leds"

// sysfs implements Controller through the Linux sysfs LED interface.
type sysfs struct {
	ledPath string
}

// newSysfs creates a controller for one LED under /sys/class/leds.
func newSysfs(name string) *sysfs {
	return &sysfs{ledPath: filepath.Join(sysfsLEDPath, name)}
}

// Set writes the trigger and brightness files for the LED.
func (s *sysfs) Set(enabled bool, pattern string) error {
	if _, err := os.Stat(s.ledPath); err != nil {
		return fmt.Errorf("status LED not found at %s: %w", s.ledPath, err)
	}

	if pattern != "" {
		// The solid pattern needs manual brightness control, so the
		// trigger goes to none; blink rides the heartbeat trigger.
		var trigger string
		switch pattern {
		case PatternSolid:
			trigger = "none"
		case PatternBlink, PatternHeartbeat:
			trigger = "heartbeat"
		default:
			// Allow raw kernel trigger names
			trigger = pattern
		}

		triggerPath := filepath.Join(s.ledPath, "trigger")
		if err := os.WriteFile(triggerPath, []byte(trigger), 0644); err != nil {
			return fmt.Errorf("failed to set LED trigger: %w", err)
		}
	}

	brightness := "0"
	if enabled {
		brightness = "1"
	}

	brightnessPath := filepath.Join(s.ledPath, "brightness")
	if err := os.WriteFile(brightnessPath, []byte(brightness), 0644); err != nil {
		return fmt.Errorf("failed to set LED brightness: %w", err)
	}

	return nil
}
