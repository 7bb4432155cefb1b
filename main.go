package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/SebastiaanZ/cpx-pomodoro/cmd"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/api"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/board"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/config"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/history"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/metrics"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/pomodoro"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/statusled"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Board settings
	Board string `help:"Board backend (auto, sim, noop)" default:"auto" toml:"board.kind" env:"BOARD_KIND"`

	// Timer settings
	SettingsFile string `help:"Timer settings file, reloaded between sessions when it changes" default:"settings.toml" toml:"timer.settings_file" env:"TIMER_SETTINGS_FILE"`

	// API settings
	APIPort string `help:"API listen address, empty disables the API" short:"p" default:":8090" toml:"api.port" env:"API_PORT"`

	// History settings
	HistoryPath string `help:"Session history database, empty disables history" default:"" toml:"history.path" env:"HISTORY_PATH"`

	// Features settings
	StatusLED bool `help:"Mirror the engine state on the host status LED" default:"false" toml:"features.status_led" env:"FEATURES_STATUS_LED"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingEngine    string `help:"Engine logging level" default:"info" toml:"logging.engine" env:"LOGGING_ENGINE"`
	LoggingBoard     string `help:"Board logging level" default:"info" toml:"logging.board" env:"LOGGING_BOARD"`
	LoggingAPI       string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHistory   string `help:"History logging level" default:"info" toml:"logging.history" env:"LOGGING_HISTORY"`
	LoggingConfig    string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingStatusLED string `help:"Status LED logging level" default:"info" toml:"logging.statusled" env:"LOGGING_STATUSLED"`
}

func main() {
	// Create Huma CLI. The variable is captured by the options closure
	// so config loading can see which flags were set on the root command.
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		loggingConfig := logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"engine":    opts.LoggingEngine,
				"board":     opts.LoggingBoard,
				"api":       opts.LoggingAPI,
				"history":   opts.LoggingHistory,
				"config":    opts.LoggingConfig,
				"statusled": opts.LoggingStatusLED,
			},
		}
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")

		// Board backend: simulator on a terminal, no-op when headless
		brd := board.New(opts.Board, logging.GetLogger("board"))

		// Event bus for in-process event handling
		eventBus := events.New()

		// Timer settings: file contents over defaults
		settings, err := config.LoadTimerSettings(opts.SettingsFile)
		if err != nil {
			logger.Error("Invalid timer settings", "error", err, "path", opts.SettingsFile)
			os.Exit(1)
		}

		engine, err := pomodoro.New(brd, pomodoro.RealClock{}, eventBus, settings)
		if err != nil {
			logger.Error("Failed to create engine", "error", err)
			os.Exit(1)
		}

		// Metrics recorder feeds the Prometheus counters from the bus
		metricsRecorder := metrics.NewRecorder(eventBus)

		// Session history, only when a database path is configured
		var historyStore *history.Store
		var historyRecorder *history.Recorder
		if opts.HistoryPath != "" {
			historyStore, err = history.New(opts.HistoryPath)
			if err != nil {
				logger.Error("Failed to open history store", "error", err, "path", opts.HistoryPath)
				os.Exit(1)
			}
			historyRecorder = history.NewRecorder(historyStore, eventBus)
			logger.Info("Session history enabled", "path", opts.HistoryPath)
		}

		// Status LED mirror, off by default
		var ledManager *statusled.Manager
		if opts.StatusLED {
			ledManager = statusled.NewManager(statusled.New(), eventBus)
		}

		// Read-only API, disabled when no port is configured
		var server *api.Server
		if opts.APIPort != "" {
			server = api.NewServer(&api.Options{
				Engine:            engine,
				EventBus:          eventBus,
				History:           historyStore,
				PrometheusHandler: metrics.HTTPHandler(),
			})
		}

		// Settings watcher stages file changes for the next idle
		watcher := config.NewConfigWatcher(
			opts.SettingsFile,
			config.LoadTimerSettings,
			logging.GetLogger("config"),
		)
		watcher.OnReload(func(fresh pomodoro.Settings) {
			if stageErr := engine.StageSettings(fresh); stageErr != nil {
				logger.Warn("Ignoring invalid settings change", "error", stageErr)
			}
		})

		ctx, cancel := context.WithCancel(context.Background())
		engineDone := make(chan struct{})

		hooks.OnStart(func() {
			if ledManager != nil {
				ledManager.Start()
			}

			// Hot reload is best effort; the engine runs without it
			if watchErr := watcher.Start(); watchErr != nil {
				logger.Warn("Settings watcher unavailable, hot reload disabled", "error", watchErr)
			}

			if server != nil {
				go func() {
					if startErr := server.Start(opts.APIPort); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
						logger.Error("API server failed", "error", startErr)
					}
				}()
			}

			if runErr := engine.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				logger.Error("Engine stopped", "error", runErr)
			}
			close(engineDone)
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			cancel()

			// Give the engine one tick to leave the board alone
			select {
			case <-engineDone:
			case <-time.After(2 * time.Second):
				logger.Warn("Engine did not stop in time")
			}

			if server != nil {
				if stopErr := server.Stop(); stopErr != nil {
					logger.Error("Error stopping API server", "error", stopErr)
				}
			}

			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Warn("Error stopping settings watcher", "error", stopErr)
			}

			if ledManager != nil {
				ledManager.Stop()
			}
			if historyRecorder != nil {
				historyRecorder.Close()
			}
			if historyStore != nil {
				if closeErr := historyStore.Close(); closeErr != nil {
					logger.Warn("Error closing history store", "error", closeErr)
				}
			}
			metricsRecorder.Close()

			// Blank the ring on the way out
			if closeErr := brd.Close(); closeErr != nil {
				logger.Warn("Error closing board", "error", closeErr)
			}
		})
	})

	// Add validate command
	validateCmd := cmd.CreateValidateCmd()
	cli.Root().AddCommand(validateCmd)

	// Add update command
	updateCmd := cmd.CreateUpdateCmd()
	cli.Root().AddCommand(updateCmd)

	// Run the CLI
	cli.Run()
}
