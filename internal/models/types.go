package models

import (
	"encoding/json"
	"time"

	"ALERTNESS/go-backend/internal/landmarks"
)

// WebSocket message types.
const (
	MsgPing      = "PING"
	MsgStart     = "START"
	MsgLandmarks = "LANDMARKS"
	MsgStop      = "STOP"

	MsgWelcome        = "WELCOME"
	MsgPong           = "PONG"
	MsgSessionStarted = "SESSION_STARTED"
	MsgStatus         = "STATUS"
	MsgSpeak          = "SPEAK"
	MsgSessionStopped = "SESSION_STOPPED"
	MsgError          = "ERROR"
)

// WebSocketMessage is the envelope of every WebSocket frame in both
// directions. Inbound payloads stay raw until the type is known.
type WebSocketMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	ClientID  string          `json:"client_id,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// OutboundMessage is a server-to-client envelope.
type OutboundMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	ClientID  string      `json:"client_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// StartPayload optionally overrides the thresholds for one session.
type StartPayload struct {
	EARThreshold        *float64 `json:"ear_threshold,omitempty"`
	ClosedFrameDebounce *int     `json:"closed_frame_debounce,omitempty"`
}

// LandmarksPayload carries one detector result. A null point is missing.
type LandmarksPayload struct {
	Seq   uint64               `json:"seq"`
	Faces [][]*landmarks.Point `json:"faces"`
}

func (p LandmarksPayload) Result() landmarks.Result {
	res := landmarks.Result{Seq: p.Seq, Timestamp: time.Now()}
	for _, pts := range p.Faces {
		res.Faces = append(res.Faces, landmarks.Face(pts))
	}
	return res
}

type SessionPayload struct {
	SessionID string `json:"session_id"`
}

type StatusPayload struct {
	AlertState      string  `json:"alert_state"`
	DetectionStatus string  `json:"detection_status"`
	EAR             float64 `json:"ear"`
	ClosedFrames    int     `json:"closed_frames"`
}

type SpeakPayload struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp int64  `json:"timestamp"`
	Code      string `json:"code,omitempty"`
}

type HealthStatus struct {
	Status        string `json:"status"`
	GoBackend     string `json:"go_backend"`
	Detector      string `json:"detector"`
	ActiveClients int    `json:"active_clients"`
	UptimeSec     int    `json:"uptime_sec"`
	Version       string `json:"version,omitempty"`
	Timestamp     string `json:"timestamp"`
}
