package services

import (
	"sync/atomic"
	"time"

	"ALERTNESS/go-backend/internal/landmarks"
)

type Metrics struct {
	startTime time.Time

	totalFrames   atomic.Int64
	usableFrames  atomic.Int64
	noFaceFrames  atomic.Int64
	skippedFrames atomic.Int64
	totalLatency  atomic.Int64
	lastFrameTime atomic.Int64

	totalErrors    atomic.Int64
	alertsEmitted  atomic.Int64
	activeSessions atomic.Int32
	totalSessions  atomic.Int64

	wsConnections atomic.Int64
	wsMessages    atomic.Int64
	wsErrors      atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordFrame counts one frame by validator outcome. latency is the core
// processing time, not the detector's.
func (m *Metrics) RecordFrame(kind landmarks.Kind, latency time.Duration) {
	m.totalFrames.Add(1)
	m.totalLatency.Add(latency.Microseconds())
	m.lastFrameTime.Store(time.Now().Unix())

	switch kind {
	case landmarks.Usable:
		m.usableFrames.Add(1)
	case landmarks.NoFace:
		m.noFaceFrames.Add(1)
	default:
		m.skippedFrames.Add(1)
	}
}

func (m *Metrics) SessionStarted() {
	m.activeSessions.Add(1)
	m.totalSessions.Add(1)
}

func (m *Metrics) SessionEnded() {
	m.activeSessions.Add(-1)
}

func (m *Metrics) IncrementAlerts() {
	m.alertsEmitted.Add(1)
}

func (m *Metrics) IncrementErrors() {
	m.totalErrors.Add(1)
}

func (m *Metrics) GetTotalFrames() int64 {
	return m.totalFrames.Load()
}

func (m *Metrics) GetTotalErrors() int64 {
	return m.totalErrors.Load()
}

func (m *Metrics) GetAlertsEmitted() int64 {
	return m.alertsEmitted.Load()
}

func (m *Metrics) GetActiveSessions() int {
	return int(m.activeSessions.Load())
}

// GetAvgLatency returns the mean per-frame processing time in milliseconds.
func (m *Metrics) GetAvgLatency() float64 {
	frames := m.totalFrames.Load()
	if frames == 0 {
		return 0
	}
	return float64(m.totalLatency.Load()) / float64(frames) / 1000
}

func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

func (m *Metrics) IncrementWebSocketConnections() {
	m.wsConnections.Add(1)
}

func (m *Metrics) DecrementWebSocketConnections() {
	m.wsConnections.Add(-1)
}

func (m *Metrics) GetWebSocketConnections() int64 {
	return m.wsConnections.Load()
}

func (m *Metrics) IncrementWebSocketMessages() {
	m.wsMessages.Add(1)
}

func (m *Metrics) IncrementWebSocketErrors() {
	m.wsErrors.Add(1)
}

// Snapshot returns all counters keyed for the /api/metrics response.
func (m *Metrics) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"total_frames":      m.totalFrames.Load(),
		"usable_frames":     m.usableFrames.Load(),
		"no_face_frames":    m.noFaceFrames.Load(),
		"skipped_frames":    m.skippedFrames.Load(),
		"avg_latency_ms":    m.GetAvgLatency(),
		"last_frame_time":   m.lastFrameTime.Load(),
		"total_errors":      m.totalErrors.Load(),
		"alerts_emitted":    m.alertsEmitted.Load(),
		"active_sessions":   m.activeSessions.Load(),
		"total_sessions":    m.totalSessions.Load(),
		"system_uptime_sec": int(m.Uptime().Seconds()),
		"websocket": map[string]interface{}{
			"connections": m.wsConnections.Load(),
			"messages":    m.wsMessages.Load(),
			"errors":      m.wsErrors.Load(),
		},
	}
}
