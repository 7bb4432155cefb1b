package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/api/models"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/history"
)

// RecentSessionsRequest bounds the history page size.
type RecentSessionsRequest struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of sessions to return"`
}

// registerHistoryRoutes registers the session history endpoints.
func (s *Server) registerHistoryRoutes() {
	// Only register if a history store is configured
	if s.options.History == nil {
		s.logger.Debug("History store not configured, skipping history routes")
		return
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-recent-sessions",
		Method:      http.MethodGet,
		Path:        "/api/history/recent",
		Summary:     "Recent Sessions",
		Description: "Get the most recently started sessions with their recorded intervals",
		Tags:        []string{"history"},
		Errors:      []int{500},
	}, func(ctx context.Context, input *RecentSessionsRequest) (*models.HistoryResponse, error) {
		sessions, err := s.options.History.RecentSessions(ctx, input.Limit)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to read history", err)
		}

		data := models.HistoryData{
			Sessions: make([]models.HistorySessionData, 0, len(sessions)),
			Count:    len(sessions),
		}
		for _, session := range sessions {
			data.Sessions = append(data.Sessions, toHistorySession(session))
		}

		return &models.HistoryResponse{Body: data}, nil
	})

	s.logger.Info("History routes registered")
}

func toHistorySession(session *history.Session) models.HistorySessionData {
	out := models.HistorySessionData{
		ID:         session.ID,
		StartedAt:  session.StartedAt,
		FinishedAt: session.FinishedAt,
		Outcome:    session.Outcome,
		Schedule:   session.Schedule,
		Completed:  session.Completed,
		Intervals:  make([]models.HistoryIntervalData, 0, len(session.Intervals)),
	}
	for _, interval := range session.Intervals {
		out.Intervals = append(out.Intervals, models.HistoryIntervalData{
			Index:         interval.Index,
			Kind:          interval.Kind,
			StartedAt:     interval.StartedAt,
			FinishedAt:    interval.FinishedAt,
			Outcome:       interval.Outcome,
			PausedSeconds: interval.PausedSeconds,
		})
	}
	return out
}
