// Package session owns the start/stop lifecycle around one alertness state
// machine and the frame source feeding it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/pkg/log"
)

var ErrAlreadyRunning = errors.New("session already running")

// FrameSource delivers detector results. Open starts delivery on the returned
// channel until ctx is cancelled or Close is called. Implementations must not
// block forever on a send once ctx is done.
type FrameSource interface {
	Open(ctx context.Context, opts landmarks.DetectorOptions) (<-chan landmarks.Result, error)
	Close() error
}

// Publisher fans status transitions out beyond the session's own sink.
type Publisher interface {
	Publish(sessionID string, t alertness.Transition)
}

// Metrics is the subset of process metrics the controller reports to.
type Metrics interface {
	RecordFrame(kind landmarks.Kind, latency time.Duration)
	SessionStarted()
	SessionEnded()
}

// Store persists session summaries.
type Store interface {
	SessionStarted(ctx context.Context, s Summary) error
	SessionEnded(ctx context.Context, s Summary) error
}

// Summary is the persisted record of one run.
type Summary struct {
	ID              string
	ClientID        string
	Source          string
	StartedAt       time.Time
	EndedAt         *time.Time
	FramesProcessed int64
	FramesSkipped   int64
}

type Options struct {
	Source     FrameSource
	SourceName string
	ClientID   string
	Detector   landmarks.DetectorOptions
	Config     alertness.Config
	Dispatcher alertness.Dispatcher
	Sink       alertness.Sink
	Publisher  Publisher
	Metrics    Metrics
	Store      Store
}

// Snapshot is a point-in-time view of a controller.
type Snapshot struct {
	ID              string          `json:"id,omitempty"`
	ClientID        string          `json:"client_id,omitempty"`
	Source          string          `json:"source,omitempty"`
	Active          bool            `json:"active"`
	SourceEnded     bool            `json:"source_ended,omitempty"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	State           alertness.State `json:"-"`
	FramesProcessed int64           `json:"frames_processed"`
	FramesSkipped   int64           `json:"frames_skipped"`
}

// Controller runs at most one session at a time. Start and Stop may be
// called from any goroutine; frames are always processed on a single
// goroutine per run.
type Controller struct {
	opts Options

	mu   sync.Mutex
	run  *run
	last *Snapshot
}

type run struct {
	id        string
	startedAt time.Time
	machine   *alertness.Machine
	cancel    context.CancelFunc
	ctx       context.Context
	done      chan struct{}

	active      atomic.Bool
	sourceEnded atomic.Bool
	processed   atomic.Int64
	skipped     atomic.Int64

	mu    sync.Mutex
	state alertness.State
}

func NewController(opts Options) *Controller {
	if opts.Config == (alertness.Config{}) {
		opts.Config = alertness.DefaultConfig()
	}
	if opts.Detector == (landmarks.DetectorOptions{}) {
		opts.Detector = landmarks.DefaultDetectorOptions()
	}
	return &Controller{opts: opts}
}

// Start allocates fresh session state and opens the frame source. A failure
// to open the source is returned and leaves the controller idle.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run != nil {
		return ErrAlreadyRunning
	}
	if c.opts.Source == nil {
		return errors.New("no frame source configured")
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	frames, err := c.opts.Source.Open(runCtx, c.opts.Detector)
	if err != nil {
		cancel()
		return fmt.Errorf("open frame source %s: %w", c.opts.SourceName, err)
	}

	r := &run{
		id:        uuid.NewString(),
		startedAt: time.Now(),
		ctx:       runCtx,
		cancel:    cancel,
		done:      make(chan struct{}),
		state:     alertness.NewState(),
	}
	r.machine = alertness.NewMachine(c.opts.Config, c.opts.Dispatcher, c.sinkFor(r))
	r.active.Store(true)
	c.run = r

	if c.opts.Metrics != nil {
		c.opts.Metrics.SessionStarted()
	}
	c.persist(func(ctx context.Context, s Store) error { return s.SessionStarted(ctx, c.summary(r, nil)) })

	log.Info(log.Fields{
		"session_id": r.id,
		"client_id":  c.opts.ClientID,
		"source":     c.opts.SourceName,
		"threshold":  c.opts.Config.EARThreshold,
		"debounce":   c.opts.Config.ClosedFrameDebounce,
	}, "session started")

	go c.loop(r, frames)
	return nil
}

// Stop ends the running session. After Stop returns no further frames are
// processed and the sink is not called again. Stop on an idle controller is
// a no-op.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.run
	if r == nil {
		return nil
	}
	c.run = nil

	r.active.Store(false)
	r.cancel()
	closeErr := c.opts.Source.Close()
	<-r.done

	ended := time.Now()
	snap := c.snapshotOf(r)
	snap.Active = false
	c.last = &snap

	if c.opts.Metrics != nil {
		c.opts.Metrics.SessionEnded()
	}
	c.persist(func(ctx context.Context, s Store) error { return s.SessionEnded(ctx, c.summary(r, &ended)) })

	log.Info(log.Fields{
		"session_id": r.id,
		"processed":  r.processed.Load(),
		"skipped":    r.skipped.Load(),
		"duration":   ended.Sub(r.startedAt).Round(time.Millisecond).String(),
	}, "session stopped")

	if closeErr != nil {
		return fmt.Errorf("close frame source %s: %w", c.opts.SourceName, closeErr)
	}
	return nil
}

// Running reports whether a session is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run != nil
}

// Snapshot returns the running session, or the last stopped one.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run != nil {
		return c.snapshotOf(c.run)
	}
	if c.last != nil {
		return *c.last
	}
	return Snapshot{State: alertness.NewState()}
}

func (c *Controller) loop(r *run, frames <-chan landmarks.Result) {
	defer close(r.done)

	for {
		select {
		case <-r.ctx.Done():
			return
		case res, ok := <-frames:
			if !ok {
				r.sourceEnded.Store(true)
				log.Info(log.Fields{"session_id": r.id, "source": c.opts.SourceName}, "frame source ended")
				return
			}
			if !r.active.Load() {
				return
			}
			c.process(r, res)
		}
	}
}

func (c *Controller) process(r *run, res landmarks.Result) {
	start := time.Now()

	cls := landmarks.Classify(res.Faces)
	tr := r.machine.Observe(cls)

	kind := cls.Kind
	if tr.Processed {
		r.processed.Add(1)
	} else {
		kind = landmarks.Skip
		r.skipped.Add(1)
	}

	r.mu.Lock()
	r.state = r.machine.State()
	r.mu.Unlock()

	if c.opts.Metrics != nil {
		c.opts.Metrics.RecordFrame(kind, time.Since(start))
	}
}

func (c *Controller) sinkFor(r *run) alertness.Sink {
	return alertness.SinkFunc(func(t alertness.Transition) {
		if !r.active.Load() {
			return
		}
		if t.AlertChanged {
			log.Info(log.Fields{
				"session_id":    r.id,
				"alert_state":   t.Alert.String(),
				"closed_frames": t.ClosedFrames,
				"ear":           t.EAR,
			}, "alert state changed")
		}
		if c.opts.Sink != nil {
			c.opts.Sink.Notify(t)
		}
		if c.opts.Publisher != nil {
			c.opts.Publisher.Publish(r.id, t)
		}
	})
}

func (c *Controller) snapshotOf(r *run) Snapshot {
	r.mu.Lock()
	state := r.state
	r.mu.Unlock()

	started := r.startedAt
	return Snapshot{
		ID:              r.id,
		ClientID:        c.opts.ClientID,
		Source:          c.opts.SourceName,
		Active:          r.active.Load(),
		SourceEnded:     r.sourceEnded.Load(),
		StartedAt:       &started,
		State:           state,
		FramesProcessed: r.processed.Load(),
		FramesSkipped:   r.skipped.Load(),
	}
}

func (c *Controller) summary(r *run, ended *time.Time) Summary {
	return Summary{
		ID:              r.id,
		ClientID:        c.opts.ClientID,
		Source:          c.opts.SourceName,
		StartedAt:       r.startedAt,
		EndedAt:         ended,
		FramesProcessed: r.processed.Load(),
		FramesSkipped:   r.skipped.Load(),
	}
}

func (c *Controller) persist(fn func(ctx context.Context, s Store) error) {
	if c.opts.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx, c.opts.Store); err != nil {
		log.Warn(log.Fields{"error": err.Error()}, "failed to persist session summary")
	}
}
