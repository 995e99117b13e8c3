package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/landmarks"
)

type fakeSource struct {
	mu      sync.Mutex
	ch      chan landmarks.Result
	opened  int
	closed  int
	openErr error
	opts    landmarks.DetectorOptions
}

func (s *fakeSource) Open(ctx context.Context, opts landmarks.DetectorOptions) (<-chan landmarks.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.opened++
	s.opts = opts
	s.ch = make(chan landmarks.Result)
	return s.ch, nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// send delivers a frame and blocks until the session loop has taken it.
func (s *fakeSource) send(t *testing.T, faces ...landmarks.Face) {
	t.Helper()
	s.mu.Lock()
	ch := s.ch
	s.mu.Unlock()
	select {
	case ch <- landmarks.Result{Faces: faces, Timestamp: time.Now()}:
	case <-time.After(2 * time.Second):
		t.Fatalf("session loop did not take frame")
	}
}

// end closes the frame channel, as a source does when its producer exits.
func (s *fakeSource) end() {
	s.mu.Lock()
	close(s.ch)
	s.mu.Unlock()
}

type countingDispatcher struct {
	n atomic.Int32
}

func (d *countingDispatcher) Emit() { d.n.Add(1) }

type recordingSink struct {
	mu  sync.Mutex
	got []alertness.Transition
}

func (r *recordingSink) Notify(t alertness.Transition) {
	r.mu.Lock()
	r.got = append(r.got, t)
	r.mu.Unlock()
}

func (r *recordingSink) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

type fakeStore struct {
	mu      sync.Mutex
	started []Summary
	ended   []Summary
}

func (f *fakeStore) SessionStarted(_ context.Context, s Summary) error {
	f.mu.Lock()
	f.started = append(f.started, s)
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) SessionEnded(_ context.Context, s Summary) error {
	f.mu.Lock()
	f.ended = append(f.ended, s)
	f.mu.Unlock()
	return nil
}

type fakeMetrics struct {
	frames atomic.Int64
	active atomic.Int32
}

func (m *fakeMetrics) RecordFrame(landmarks.Kind, time.Duration) { m.frames.Add(1) }
func (m *fakeMetrics) SessionStarted()                           { m.active.Add(1) }
func (m *fakeMetrics) SessionEnded()                             { m.active.Add(-1) }

// waitFor polls until cond holds. The last frame sent may still be in
// process when send returns.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met")
}

func TestControllerLifecycle(t *testing.T) {
	src := &fakeSource{}
	disp := &countingDispatcher{}
	sink := &recordingSink{}
	store := &fakeStore{}
	metrics := &fakeMetrics{}

	c := NewController(Options{
		Source:     src,
		SourceName: "fake",
		ClientID:   "client-1",
		Dispatcher: disp,
		Sink:       sink,
		Store:      store,
		Metrics:    metrics,
	})

	if c.Running() {
		t.Fatalf("new controller should be idle")
	}
	if snap := c.Snapshot(); snap.Active || snap.State != alertness.NewState() {
		t.Fatalf("idle snapshot = %+v", snap)
	}

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start: %v", err)
	}
	if src.opts != landmarks.DefaultDetectorOptions() {
		t.Errorf("source opened with %+v", src.opts)
	}
	if metrics.active.Load() != 1 {
		t.Errorf("active sessions = %d", metrics.active.Load())
	}

	closed := landmarks.Synthetic(0.1)
	for i := 0; i < 20; i++ {
		src.send(t, closed)
	}
	partial := landmarks.Synthetic(0.3)
	partial[landmarks.LeftEye[2]] = nil
	src.send(t, partial)
	waitFor(t, func() bool { return c.Snapshot().FramesSkipped == 1 })

	snap := c.Snapshot()
	if !snap.Active || snap.ID == "" || snap.ClientID != "client-1" {
		t.Errorf("running snapshot = %+v", snap)
	}
	if snap.State.Alert != alertness.Drowsy || snap.State.ClosedFrames != 20 {
		t.Errorf("state = %+v, want drowsy after 20 closed frames", snap.State)
	}
	if snap.FramesProcessed != 20 {
		t.Errorf("processed = %d, want 20", snap.FramesProcessed)
	}
	if disp.n.Load() != 1 {
		t.Errorf("alerts = %d, want 1", disp.n.Load())
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if c.Running() {
		t.Fatalf("controller still running after Stop")
	}
	if src.closed != 1 {
		t.Errorf("source closed %d times", src.closed)
	}
	if metrics.active.Load() != 0 {
		t.Errorf("active sessions after stop = %d", metrics.active.Load())
	}
	if metrics.frames.Load() != 21 {
		t.Errorf("recorded frames = %d, want 21", metrics.frames.Load())
	}

	last := c.Snapshot()
	if last.Active || last.ID != snap.ID || last.FramesProcessed != 20 {
		t.Errorf("last snapshot = %+v", last)
	}

	if len(store.started) != 1 || len(store.ended) != 1 {
		t.Fatalf("store saw %d starts, %d ends", len(store.started), len(store.ended))
	}
	if store.ended[0].EndedAt == nil || store.ended[0].FramesProcessed != 20 || store.ended[0].FramesSkipped != 1 {
		t.Errorf("ended summary = %+v", store.ended[0])
	}

	if err := c.Stop(); err != nil {
		t.Errorf("Stop on idle controller: %v", err)
	}
}

func TestControllerRestartResetsState(t *testing.T) {
	src := &fakeSource{}
	disp := &countingDispatcher{}
	c := NewController(Options{Source: src, Dispatcher: disp})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 16; i++ {
		src.send(t, landmarks.Synthetic(0.1))
	}
	waitFor(t, func() bool { return disp.n.Load() == 1 })
	first := c.Snapshot().ID
	c.Stop()

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer c.Stop()

	snap := c.Snapshot()
	if snap.ID == first {
		t.Errorf("restart reused session id")
	}
	if snap.State != alertness.NewState() || snap.FramesProcessed != 0 {
		t.Errorf("restart did not reset state: %+v", snap)
	}

	// A fresh episode after restart alerts again.
	for i := 0; i < 16; i++ {
		src.send(t, landmarks.Synthetic(0.1))
	}
	waitFor(t, func() bool { return disp.n.Load() == 2 })
}

func TestControllerStartFailure(t *testing.T) {
	src := &fakeSource{openErr: errors.New("camera busy")}
	metrics := &fakeMetrics{}
	c := NewController(Options{Source: src, SourceName: "worker", Metrics: metrics})

	err := c.Start(context.Background())
	if err == nil {
		t.Fatalf("expected start error")
	}
	if !errors.Is(err, src.openErr) {
		t.Errorf("error does not wrap cause: %v", err)
	}
	if c.Running() {
		t.Errorf("controller running after failed start")
	}
	if metrics.active.Load() != 0 {
		t.Errorf("failed start counted as a session")
	}

	src.openErr = nil
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start after failure: %v", err)
	}
	c.Stop()
}

func TestControllerNoSource(t *testing.T) {
	c := NewController(Options{})
	if err := c.Start(context.Background()); err == nil {
		t.Fatalf("expected error without a frame source")
	}
}

func TestControllerSinkSilentAfterStop(t *testing.T) {
	src := &fakeSource{}
	sink := &recordingSink{}
	c := NewController(Options{Source: src, Sink: sink})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	src.send(t, landmarks.Synthetic(0.3))
	waitFor(t, func() bool { return sink.len() == 1 })
	c.Stop()

	// Nothing is reading the stopped run's channel any more.
	src.mu.Lock()
	ch := src.ch
	src.mu.Unlock()
	select {
	case ch <- landmarks.Result{}:
		t.Fatalf("stopped session accepted a frame")
	case <-time.After(50 * time.Millisecond):
	}
	if sink.len() != 1 {
		t.Errorf("sink called %d times, want 1", sink.len())
	}
}

func TestControllerStartContextDoesNotEndSession(t *testing.T) {
	src := &fakeSource{}
	c := NewController(Options{Source: src})

	ctx, cancel := context.WithCancel(context.Background())
	if err := c.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	src.send(t, landmarks.Synthetic(0.3))
	waitFor(t, func() bool { return c.Snapshot().FramesProcessed == 1 })
	c.Stop()
}

func TestControllerSourceEnded(t *testing.T) {
	src := &fakeSource{}
	c := NewController(Options{Source: src})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	src.send(t, landmarks.Synthetic(0.3))
	src.end()
	waitFor(t, func() bool { return c.Snapshot().SourceEnded })

	if !c.Running() {
		t.Errorf("session should stay allocated until stopped")
	}
	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestControllerCustomConfig(t *testing.T) {
	src := &fakeSource{}
	disp := &countingDispatcher{}
	c := NewController(Options{
		Source:     src,
		Dispatcher: disp,
		Config:     alertness.Config{EARThreshold: 0.3, ClosedFrameDebounce: 2},
	})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	for i := 0; i < 3; i++ {
		src.send(t, landmarks.Synthetic(0.25))
	}
	waitFor(t, func() bool { return disp.n.Load() == 1 })
}
