package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/pomodoro"
)

// DefaultSettingsFile is the timer settings file name used when no path
// is configured.
const DefaultSettingsFile = "settings.toml"

// rawTimerSettings mirrors the [timer] table. Durations accept either a
// duration string ("45m") or whole minutes as an integer.
type rawTimerSettings struct {
	Work        any      `toml:"work"`
	ShortBreak  any      `toml:"short_break"`
	LongBreak   any      `toml:"long_break"`
	Schedule    []string `toml:"schedule"`
	Orientation string   `toml:"orientation"`
}

type rawSettingsFile struct {
	Timer rawTimerSettings `toml:"timer"`
}

// LoadTimerSettings reads the timer settings file and returns a
// validated snapshot. A missing file yields the defaults; keys absent
// from the file keep their default values. The schedule accepts both
// full kind tags and the w/sb/lb shorthand.
func LoadTimerSettings(path string) (pomodoro.Settings, error) {
	settings := pomodoro.DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read timer settings: %w", err)
	}

	var raw rawSettingsFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return settings, fmt.Errorf("failed to parse timer settings: %w", err)
	}

	if d, ok, err := parseTimerDuration("work", raw.Timer.Work); err != nil {
		return settings, err
	} else if ok {
		settings.Work = d
	}
	if d, ok, err := parseTimerDuration("short_break", raw.Timer.ShortBreak); err != nil {
		return settings, err
	} else if ok {
		settings.ShortBreak = d
	}
	if d, ok, err := parseTimerDuration("long_break", raw.Timer.LongBreak); err != nil {
		return settings, err
	} else if ok {
		settings.LongBreak = d
	}

	if raw.Timer.Schedule != nil {
		schedule := make([]pomodoro.Kind, len(raw.Timer.Schedule))
		for i, tag := range raw.Timer.Schedule {
			kind, err := pomodoro.ParseKind(tag)
			if err != nil {
				return settings, fmt.Errorf("schedule entry %d: %w", i, err)
			}
			schedule[i] = kind
		}
		settings.Schedule = schedule
	}

	if raw.Timer.Orientation != "" {
		orientation, err := pomodoro.ParseOrientation(raw.Timer.Orientation)
		if err != nil {
			return settings, err
		}
		settings.Orientation = orientation
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("timer settings: %w", err)
	}
	return settings, nil
}

// parseTimerDuration coerces one raw TOML value into a duration. The
// second return reports whether the key was present.
func parseTimerDuration(field string, v any) (time.Duration, bool, error) {
	switch value := v.(type) {
	case nil:
		return 0, false, nil
	case string:
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, false, fmt.Errorf("%s: invalid duration %q", field, value)
		}
		return d, true, nil
	case int64:
		return time.Duration(value) * time.Minute, true, nil
	default:
		return 0, false, fmt.Errorf("%s: must be a duration string or whole minutes, got %T", field, v)
	}
}

// savedTimerSettings is the marshaled form: durations as strings, the
// schedule as full tags.
type savedTimerSettings struct {
	Work        string   `toml:"work"`
	ShortBreak  string   `toml:"short_break"`
	LongBreak   string   `toml:"long_break"`
	Schedule    []string `toml:"schedule"`
	Orientation string   `toml:"orientation"`
}

type savedSettingsFile struct {
	Timer savedTimerSettings `toml:"timer"`
}

// SaveTimerSettings writes a settings snapshot as TOML, creating the
// parent directory when needed.
func SaveTimerSettings(path string, s pomodoro.Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("timer settings: %w", err)
	}

	out := savedSettingsFile{
		Timer: savedTimerSettings{
			Work:        formatTimerDuration(s.Work),
			ShortBreak:  formatTimerDuration(s.ShortBreak),
			LongBreak:   formatTimerDuration(s.LongBreak),
			Schedule:    s.ScheduleTags(),
			Orientation: s.Orientation.String(),
		},
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal timer settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timer settings: %w", err)
	}
	return nil
}

// formatTimerDuration renders whole minutes as "45m", anything else in
// the stock duration notation.
func formatTimerDuration(d time.Duration) string {
	if d > 0 && d%time.Minute == 0 {
		return fmt.Sprintf("%dm", pomodoro.Minutes(d))
	}
	return d.String()
}
