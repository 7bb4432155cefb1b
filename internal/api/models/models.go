package models

import "time"

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Timer status models
type StatusData struct {
	State          string    `json:"state" example:"running" doc:"Engine state: idle, running or paused"`
	SessionID      string    `json:"session_id,omitempty" example:"sess_a1b2c3d4" doc:"Identifier of the session in progress"`
	IntervalIndex  int       `json:"interval_index" example:"2" doc:"Zero-based position in the session schedule"`
	IntervalKind   string    `json:"interval_kind,omitempty" example:"work" doc:"Kind of the interval in progress"`
	IntervalCount  int       `json:"interval_count" example:"7" doc:"Number of intervals in the running schedule"`
	SessionStarted time.Time `json:"session_started,omitzero" doc:"When the session in progress began"`
}

type StatusResponse struct {
	Body StatusData
}

// Schedule models
type ScheduleData struct {
	Work        string   `json:"work" example:"45m0s" doc:"Work interval duration"`
	ShortBreak  string   `json:"short_break" example:"10m0s" doc:"Short break duration"`
	LongBreak   string   `json:"long_break" example:"20m0s" doc:"Long break duration"`
	Schedule    []string `json:"schedule" doc:"Interval kinds in run order"`
	Orientation string   `json:"orientation" example:"usb_down" doc:"Board orientation (usb_down or usb_up)"`
}

type ScheduleResponse struct {
	Body ScheduleData
}

// Lifetime stats models
type StatsData struct {
	SessionsStarted    int64            `json:"sessions_started" example:"12" doc:"Sessions started since the daemon came up"`
	SessionsCompleted  int64            `json:"sessions_completed" example:"9" doc:"Sessions that ran their full schedule"`
	SessionsAborted    int64            `json:"sessions_aborted" example:"3" doc:"Sessions cancelled partway through"`
	IntervalsCompleted map[string]int64 `json:"intervals_completed" doc:"Completed intervals by kind"`
	IntervalsCancelled map[string]int64 `json:"intervals_cancelled" doc:"Cancelled intervals by kind"`
	Pauses             int64            `json:"pauses" example:"5" doc:"Times a running interval was paused"`
	PausedSeconds      float64          `json:"paused_seconds" example:"420.5" doc:"Total time spent paused, in seconds"`
	Presses            map[string]int64 `json:"presses" doc:"Accepted button presses by button"`
	SettingsReloads    int64            `json:"settings_reloads" example:"1" doc:"Settings reloads applied between sessions"`
}

type StatsResponse struct {
	Body StatsData
}

// History models
type HistoryIntervalData struct {
	Index         int        `json:"index" example:"0" doc:"Position in the session schedule"`
	Kind          string     `json:"kind" example:"work" doc:"Interval kind"`
	StartedAt     time.Time  `json:"started_at" doc:"When the interval began"`
	FinishedAt    *time.Time `json:"finished_at,omitempty" doc:"When the interval ended"`
	Outcome       string     `json:"outcome" example:"completed" doc:"running, completed or cancelled"`
	PausedSeconds float64    `json:"paused_seconds" example:"120" doc:"Time spent paused, in seconds"`
}

type HistorySessionData struct {
	ID         string                `json:"id" example:"sess_a1b2c3d4" doc:"Session identifier"`
	StartedAt  time.Time             `json:"started_at" doc:"When the session began"`
	FinishedAt *time.Time            `json:"finished_at,omitempty" doc:"When the session ended"`
	Outcome    string                `json:"outcome" example:"completed" doc:"running, completed or aborted"`
	Schedule   []string              `json:"schedule" doc:"Interval kinds the session was scheduled to run"`
	Completed  int                   `json:"completed_intervals" example:"7" doc:"Intervals that ran to the end"`
	Intervals  []HistoryIntervalData `json:"intervals" doc:"Recorded intervals in schedule order"`
}

type HistoryData struct {
	Sessions []HistorySessionData `json:"sessions" doc:"Most recent sessions, newest first"`
	Count    int                  `json:"count" example:"2" doc:"Number of sessions returned"`
}

type HistoryResponse struct {
	Body HistoryData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2025-06-02 09:00" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}
