package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/api/models"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/metrics"
)

// registerStatusRoutes registers the engine status, schedule and stats
// endpoints.
func (s *Server) registerStatusRoutes() {
	// Current engine state
	huma.Register(s.api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Timer Status",
		Description: "Get the engine state and the position of the session in progress",
		Tags:        []string{"timer"},
	}, func(_ context.Context, _ *struct{}) (*models.StatusResponse, error) {
		status := s.options.Engine.Status()
		return &models.StatusResponse{
			Body: models.StatusData{
				State:          status.State.String(),
				SessionID:      status.SessionID,
				IntervalIndex:  status.IntervalIndex,
				IntervalKind:   status.IntervalKind,
				IntervalCount:  status.IntervalCount,
				SessionStarted: status.SessionStarted,
			},
		}, nil
	})

	// Settings the next session will run with
	huma.Register(s.api, huma.Operation{
		OperationID: "get-schedule",
		Method:      http.MethodGet,
		Path:        "/api/schedule",
		Summary:     "Resolved Schedule",
		Description: "Get the timer settings the next session will run with",
		Tags:        []string{"timer"},
	}, func(_ context.Context, _ *struct{}) (*models.ScheduleResponse, error) {
		settings := s.options.Engine.Settings()
		return &models.ScheduleResponse{
			Body: models.ScheduleData{
				Work:        settings.Work.String(),
				ShortBreak:  settings.ShortBreak.String(),
				LongBreak:   settings.LongBreak.String(),
				Schedule:    settings.ScheduleTags(),
				Orientation: settings.Orientation.String(),
			},
		}, nil
	})

	// Since-boot counters
	huma.Register(s.api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/stats",
		Summary:     "Lifetime Stats",
		Description: "Get since-boot counters for sessions, intervals and button input",
		Tags:        []string{"timer"},
	}, func(_ context.Context, _ *struct{}) (*models.StatsResponse, error) {
		totals := metrics.GetTimerTotals()
		return &models.StatsResponse{
			Body: models.StatsData{
				SessionsStarted:    totals.SessionsStarted,
				SessionsCompleted:  totals.SessionsCompleted,
				SessionsAborted:    totals.SessionsAborted,
				IntervalsCompleted: totals.IntervalsCompleted,
				IntervalsCancelled: totals.IntervalsCancelled,
				Pauses:             totals.Pauses,
				PausedSeconds:      totals.PausedSeconds,
				Presses:            totals.Presses,
				SettingsReloads:    totals.SettingsReloads,
			},
		}, nil
	})
}
