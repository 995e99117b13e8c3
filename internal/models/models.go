package models

import "time"

// Session is a persisted session summary.
type Session struct {
	ID              string     `json:"id"`
	ClientID        string     `json:"client_id,omitempty"`
	Source          string     `json:"source"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	FramesProcessed int64      `json:"frames_processed"`
	FramesSkipped   int64      `json:"frames_skipped"`
}

// SessionStatus is the GET /api/session response.
type SessionStatus struct {
	ID              string     `json:"id,omitempty"`
	Source          string     `json:"source,omitempty"`
	Active          bool       `json:"active"`
	SourceEnded     bool       `json:"source_ended,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	AlertState      string     `json:"alert_state"`
	DetectionStatus string     `json:"detection_status"`
	EAR             float64    `json:"ear"`
	ClosedFrames    int        `json:"closed_frames"`
	FramesProcessed int64      `json:"frames_processed"`
	FramesSkipped   int64      `json:"frames_skipped"`
}
