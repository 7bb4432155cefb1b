// Package api serves the read-only observability surface of the timer
// daemon: status, schedule, stats, history, version and a live event
// stream. It observes the engine, it never steers it.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/SebastiaanZ/cpx-pomodoro/internal/api/models"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/events"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/history"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/logging"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/pomodoro"
	"github.com/SebastiaanZ/cpx-pomodoro/internal/version"
)

// StatusSource is the subset of the timer engine the API reads.
type StatusSource interface {
	Status() pomodoro.Status
	Settings() pomodoro.Settings
}

// Options configures the API server.
type Options struct {
	Engine            StatusSource
	EventBus          *events.Bus
	History           *history.Store // nil disables the history routes
	PrometheusHandler http.Handler   // optional Prometheus metrics handler
}

// Server is the Huma v2 API server.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	options    *Options
	eventBus   *events.Bus
	logger     *slog.Logger
}

// NewServer creates a new API server with Huma v2 using Go 1.22+ native routing
func NewServer(opts *Options) *Server {
	mux := http.NewServeMux()

	// Create Huma API with Go standard library adapter
	config := huma.DefaultConfig("CPX Pomodoro API", version.String())
	config.Info.Description = "Read-only status, history and events for the Pomodoro timer daemon"
	// Empty servers list will make OpenAPI use relative paths, working with any host
	config.Servers = []*huma.Server{}

	api := humago.New(mux, config)

	server := &Server{
		api:      api,
		mux:      mux,
		options:  opts,
		eventBus: opts.EventBus,
		logger:   logging.GetLogger("api"),
	}

	// CORS first, then request logging
	api.UseMiddleware(NewCORSMiddleware(DefaultCORSConfig()))
	api.UseMiddleware(HTTPLoggingMiddleware)

	// The Prometheus endpoint bypasses the OpenAPI layer
	if opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", opts.PrometheusHandler)
	}

	server.registerRoutes()

	return server
}

// Start starts the HTTP server on the specified address. It blocks
// until the server stops.
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting API server", "addr", addr)
	s.logger.Info("OpenAPI documentation available", "url", "http://"+addr+"/docs")

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	return s.httpServer.ListenAndServe()
}

// Stop shuts down the server without waiting for open connections;
// SSE clients would otherwise hold a graceful shutdown forever.
func (s *Server) Stop() error {
	s.logger.Info("Stopping API server")

	if s.httpServer != nil {
		return s.httpServer.Close()
	}
	return nil
}

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() {
	// Health check endpoint
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health",
		Description: "Check API health status",
		Tags:        []string{"health"},
	}, func(_ context.Context, _ *struct{}) (*models.HealthResponse, error) {
		return &models.HealthResponse{
			Body: models.HealthData{
				Status:  "ok",
				Message: "API is healthy",
			},
		}, nil
	})

	// Version endpoint
	huma.Register(s.api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Version",
		Description: "Get application version information",
		Tags:        []string{"system"},
	}, func(_ context.Context, _ *struct{}) (*models.VersionResponse, error) {
		versionInfo := version.Get()
		return &models.VersionResponse{
			Body: models.VersionData{
				Version:   versionInfo.Version,
				GitCommit: versionInfo.GitCommit,
				BuildDate: versionInfo.BuildDate,
				GoVersion: versionInfo.GoVersion,
				Compiler:  versionInfo.Compiler,
				Platform:  versionInfo.Platform,
			},
		}, nil
	})

	// Timer status endpoints
	s.registerStatusRoutes()

	// History endpoints
	s.registerHistoryRoutes()

	// SSE endpoint
	s.registerEventRoutes()
}
