package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
)

// connectedEvent is the first message on a new stream. It tells the
// client its subscriptions are live before any timer events arrive.
type connectedEvent struct {
	Message   string `json:"message" example:"event stream connected" doc:"Connection confirmation"`
	Timestamp string `json:"timestamp" doc:"When the stream was opened"`
}

// registerEventRoutes registers the native Huma SSE endpoint.
func (s *Server) registerEventRoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of session, interval, pause and input events",
		Tags:        []string{"events"},
	}, map[string]any{
		"connected":          connectedEvent{},
		"session-started":    events.SessionStartedEvent{},
		"session-completed":  events.SessionCompletedEvent{},
		"session-aborted":    events.SessionAbortedEvent{},
		"interval-started":   events.IntervalStartedEvent{},
		"interval-completed": events.IntervalCompletedEvent{},
		"interval-cancelled": events.IntervalCancelledEvent{},
		"timer-paused":       events.TimerPausedEvent{},
		"timer-resumed":      events.TimerResumedEvent{},
		"press-accepted":     events.PressAcceptedEvent{},
		"settings-reloaded":  events.SettingsReloadedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		// Create event channel for this connection
		eventCh := make(chan any, 10)

		// Subscribe to all event types using the event bus
		unsubscribers := []func(){
			events.SubscribeToChannel[events.SessionStartedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SessionCompletedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SessionAbortedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.IntervalStartedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.IntervalCompletedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.IntervalCancelledEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.TimerPausedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.TimerResumedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.PressAcceptedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.SettingsReloadedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// Send initial connection confirmation
		if err := send.Data(connectedEvent{
			Message:   "event stream connected",
			Timestamp: time.Now().Format(time.RFC3339),
		}); err != nil {
			return
		}

		// Keep connection alive and forward events
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				// A send error means the client went away
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
