// Package alertness turns per-frame eye openness into a debounced driver
// alertness state.
package alertness

import (
	"fmt"

	"ALERTNESS/go-backend/internal/landmarks"
)

const (
	DefaultEARThreshold        = 0.21
	DefaultClosedFrameDebounce = 15
)

type DetectionStatus int

const (
	Waiting DetectionStatus = iota
	NoFace
	EyesOpen
	EyesClosed
)

func (s DetectionStatus) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case NoFace:
		return "No Face"
	case EyesOpen:
		return "Eyes Open"
	case EyesClosed:
		return "Eyes Closed"
	default:
		return fmt.Sprintf("DetectionStatus(%d)", int(s))
	}
}

type AlertState int

const (
	Alert AlertState = iota
	Drowsy
)

func (s AlertState) String() string {
	switch s {
	case Alert:
		return "Alert"
	case Drowsy:
		return "Drowsy"
	default:
		return fmt.Sprintf("AlertState(%d)", int(s))
	}
}

// Config holds the decision thresholds.
type Config struct {
	// EARThreshold is the frame EAR below which eyes count as closed.
	EARThreshold float64 `yaml:"ear_threshold" validate:"gt=0"`
	// ClosedFrameDebounce is the closed-frame count that must be exceeded before alerting.
	ClosedFrameDebounce int `yaml:"closed_frame_debounce" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		EARThreshold:        DefaultEARThreshold,
		ClosedFrameDebounce: DefaultClosedFrameDebounce,
	}
}

// State is the per-session decision state.
type State struct {
	ClosedFrames int
	AlertPlayed  bool
	Detection    DetectionStatus
	Alert        AlertState
	LastEAR      float64
}

// NewState returns the state of a session that has not seen a frame yet.
func NewState() State {
	return State{Detection: Waiting, Alert: Alert}
}

// Transition describes the state after one processed frame.
type Transition struct {
	Alert            AlertState
	Detection        DetectionStatus
	EAR              float64
	ClosedFrames     int
	AlertChanged     bool
	DetectionChanged bool
	// Processed is false for frames that were skipped without touching state.
	Processed bool
}

// Changed reports whether an externally visible status moved.
func (t Transition) Changed() bool {
	return t.AlertChanged || t.DetectionChanged
}

// Dispatcher raises the wake-up alert. Emit must not block.
type Dispatcher interface {
	Emit()
}

// Sink receives status transitions. It is only called when Changed is true.
type Sink interface {
	Notify(Transition)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Transition)

func (f SinkFunc) Notify(t Transition) { f(t) }

// Machine applies frames to a State. It is not safe for concurrent use; the
// owner must feed it one frame at a time in arrival order.
type Machine struct {
	cfg        Config
	state      State
	dispatcher Dispatcher
	sink       Sink
}

// NewMachine returns a machine at NewState. dispatcher and sink may be nil.
func NewMachine(cfg Config, dispatcher Dispatcher, sink Sink) *Machine {
	return &Machine{
		cfg:        cfg,
		state:      NewState(),
		dispatcher: dispatcher,
		sink:       sink,
	}
}

func (m *Machine) State() State {
	return m.state
}

// ProcessFrame classifies a detection result and applies it.
func (m *Machine) ProcessFrame(faces []landmarks.Face) Transition {
	return m.Observe(landmarks.Classify(faces))
}

// Observe applies an already classified frame.
func (m *Machine) Observe(c landmarks.Classification) Transition {
	switch c.Kind {
	case landmarks.NoFace:
		return m.apply(NoFace, 0)
	case landmarks.Usable:
		ear, ok := landmarks.FrameEAR(c.Left, c.Right)
		if !ok {
			return m.skipped()
		}
		if ear < m.cfg.EARThreshold {
			return m.apply(EyesClosed, ear)
		}
		return m.apply(EyesOpen, ear)
	default:
		return m.skipped()
	}
}

func (m *Machine) apply(detection DetectionStatus, ear float64) Transition {
	prev := m.state
	s := &m.state

	s.Detection = detection
	s.LastEAR = ear

	switch detection {
	case EyesClosed:
		s.ClosedFrames++
		if s.ClosedFrames > m.cfg.ClosedFrameDebounce && !s.AlertPlayed {
			s.AlertPlayed = true
			s.Alert = Drowsy
			if m.dispatcher != nil {
				m.dispatcher.Emit()
			}
		}
	default:
		s.ClosedFrames = 0
		s.AlertPlayed = false
		s.Alert = Alert
	}

	t := Transition{
		Alert:            s.Alert,
		Detection:        s.Detection,
		EAR:              s.LastEAR,
		ClosedFrames:     s.ClosedFrames,
		AlertChanged:     s.Alert != prev.Alert,
		DetectionChanged: s.Detection != prev.Detection,
		Processed:        true,
	}
	if t.Changed() && m.sink != nil {
		m.sink.Notify(t)
	}
	return t
}

func (m *Machine) skipped() Transition {
	return Transition{
		Alert:        m.state.Alert,
		Detection:    m.state.Detection,
		EAR:          m.state.LastEAR,
		ClosedFrames: m.state.ClosedFrames,
	}
}
