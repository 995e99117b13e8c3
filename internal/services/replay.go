package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/pkg/log"
)

// ReplaySource plays back a recording of face-mesh worker output. Unlike the
// live sources it never drops frames, so a replay is deterministic.
type ReplaySource struct {
	path string
	// interval paces delivery; zero replays as fast as the session consumes.
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReplaySource(path string, fps float64) *ReplaySource {
	var interval time.Duration
	if fps > 0 {
		interval = time.Duration(float64(time.Second) / fps)
	}
	return &ReplaySource{path: path, interval: interval}
}

func (r *ReplaySource) Open(ctx context.Context, _ landmarks.DetectorOptions) (<-chan landmarks.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return nil, ErrSourceOpen
	}

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	out := make(chan landmarks.Result)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(out)
		defer f.Close()
		r.play(ctx, bufio.NewReader(f), out)
	}()

	return out, nil
}

func (r *ReplaySource) play(ctx context.Context, rd io.Reader, out chan<- landmarks.Result) {
	var ticker *time.Ticker
	if r.interval > 0 {
		ticker = time.NewTicker(r.interval)
		defer ticker.Stop()
	}

	var n int
	for {
		res, err := ReadRecord(rd)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error(log.Fields{"path": r.path, "error": err.Error()}, "recording is corrupt")
			}
			log.Info(log.Fields{"path": r.path, "frames": n}, "replay finished")
			return
		}

		if ticker != nil {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}

		select {
		case out <- res:
			n++
		case <-ctx.Done():
			return
		}
	}
}

func (r *ReplaySource) Close() error {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()
	r.wg.Wait()
	return nil
}
