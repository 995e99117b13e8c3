package services

import (
	"context"
	"errors"
	"sync"

	"ALERTNESS/go-backend/internal/landmarks"
)

var (
	ErrSourceClosed = errors.New("frame source closed")
	ErrSourceOpen   = errors.New("frame source already open")
	ErrFrameDropped = errors.New("frame dropped, session busy")
)

// PushSource is a frame source fed by a remote producer such as a browser
// over WebSocket or a gRPC client stream. Frames pushed while the session is
// still processing earlier ones are dropped once the buffer is full.
type PushSource struct {
	buffer int

	mu sync.Mutex
	ch chan landmarks.Result
}

func NewPushSource(buffer int) *PushSource {
	if buffer < 1 {
		buffer = 1
	}
	return &PushSource{buffer: buffer}
}

func (s *PushSource) Open(ctx context.Context, _ landmarks.DetectorOptions) (<-chan landmarks.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		return nil, ErrSourceOpen
	}
	ch := make(chan landmarks.Result, s.buffer)
	s.ch = ch

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if s.ch == ch {
			s.ch = nil
		}
		s.mu.Unlock()
	}()

	return ch, nil
}

// Push hands one result to the session without blocking.
func (s *PushSource) Push(res landmarks.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		return ErrSourceClosed
	}
	select {
	case s.ch <- res:
		return nil
	default:
		return ErrFrameDropped
	}
}

func (s *PushSource) Close() error {
	s.mu.Lock()
	s.ch = nil
	s.mu.Unlock()
	return nil
}
