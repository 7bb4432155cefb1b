package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/config"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
)

// CreateValidateCmd creates the validate command.
func CreateValidateCmd() *cobra.Command {
	var settingsFile string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the timer settings file",
		Long: `Loads the timer settings file, checks every duration and schedule entry, ` +
			`and prints the session the timer would run with.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})

			if _, err := os.Stat(settingsFile); os.IsNotExist(err) && !quiet {
				fmt.Printf("Settings file %s not found, defaults in effect\n", settingsFile)
			}

			settings, err := config.LoadTimerSettings(settingsFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
				os.Exit(1)
			}

			if quiet {
				return
			}

			var total time.Duration
			for _, kind := range settings.Schedule {
				total += settings.Duration(kind)
			}

			fmt.Printf("  work:        %s\n", settings.Work)
			fmt.Printf("  short break: %s\n", settings.ShortBreak)
			fmt.Printf("  long break:  %s\n", settings.LongBreak)
			fmt.Printf("  orientation: %s\n", settings.Orientation)
			fmt.Printf("  schedule:    %s\n", strings.Join(settings.ScheduleTags(), " "))
			fmt.Printf("  session:     %s over %d intervals\n", total, len(settings.Schedule))
		},
	}

	cmd.Flags().StringVar(&settingsFile, "settings", config.DefaultSettingsFile,
		"Path to timer settings file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report errors")

	return cmd
}
