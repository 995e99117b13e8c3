package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/pkg/log"
)

// WorkerSource runs a face-mesh worker subprocess that owns the camera and
// writes length-prefixed msgpack records (see WriteRecord) to stdout. Its
// stderr is forwarded to the log.
type WorkerSource struct {
	path string
	args []string
	env  []string

	// startupGrace is how long Open waits for a first record or an early exit.
	startupGrace time.Duration

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerSource parses a command line such as
// "python3 workers/face_mesh.py --camera 0".
func NewWorkerSource(cmdline string, startupGrace time.Duration, env ...string) (*WorkerSource, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, errors.New("face-mesh worker command is empty")
	}
	return &WorkerSource{
		path:         fields[0],
		args:         fields[1:],
		env:          env,
		startupGrace: startupGrace,
	}, nil
}

func detectorArgs(o landmarks.DetectorOptions) []string {
	args := []string{
		"--max-faces", fmt.Sprint(o.MaxFaces),
		"--min-detection-confidence", fmt.Sprintf("%.2f", o.MinDetectionConfidence),
		"--min-tracking-confidence", fmt.Sprintf("%.2f", o.MinTrackingConfidence),
	}
	if o.RefineLandmarks {
		args = append(args, "--refine-landmarks")
	}
	if o.Width > 0 && o.Height > 0 {
		args = append(args, "--width", fmt.Sprint(o.Width), "--height", fmt.Sprint(o.Height))
	}
	return args
}

func (w *WorkerSource) Open(ctx context.Context, opts landmarks.DetectorOptions) (<-chan landmarks.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cmd != nil {
		return nil, ErrSourceOpen
	}

	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, w.path, append(append([]string{}, w.args...), detectorArgs(opts)...)...)
	if len(w.env) > 0 {
		cmd.Env = append(os.Environ(), w.env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start face-mesh worker: %w", err)
	}

	log.Info(log.Fields{"pid": cmd.Process.Pid, "cmd": w.path}, "face-mesh worker spawned")

	out := make(chan landmarks.Result, 4)
	ready := make(chan struct{})
	exited := make(chan error, 1)

	var pipes sync.WaitGroup
	pipes.Add(2)
	w.wg.Add(3)
	go func() {
		defer w.wg.Done()
		defer pipes.Done()
		w.readResults(ctx, stdout, out, ready)
	}()
	go func() {
		defer w.wg.Done()
		defer pipes.Done()
		w.logStderr(stderr)
	}()
	go func() {
		defer w.wg.Done()
		pipes.Wait()
		exited <- cmd.Wait()
	}()

	if w.startupGrace > 0 {
		select {
		case <-ready:
		case err := <-exited:
			cancel()
			w.wg.Wait()
			return nil, fmt.Errorf("face-mesh worker exited during startup: %v", err)
		case <-time.After(w.startupGrace):
		}
	}

	w.cmd = cmd
	w.cancel = cancel
	return out, nil
}

func (w *WorkerSource) readResults(ctx context.Context, stdout io.Reader, out chan<- landmarks.Result, ready chan struct{}) {
	defer close(out)

	var once sync.Once
	var dropped uint64
	for {
		res, err := ReadRecord(stdout)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				log.Error(log.Fields{"error": err.Error()}, "failed to read face-mesh worker output")
			}
			return
		}
		once.Do(func() { close(ready) })

		select {
		case out <- res:
		case <-ctx.Done():
			return
		default:
			dropped++
			log.Debug(log.Fields{"seq": res.Seq, "dropped": dropped}, "dropping worker frame, session busy")
		}
	}
}

func (w *WorkerSource) logStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "[ERROR]"), strings.Contains(line, "[CRITICAL]"):
			log.Error(log.Fields{"log": line}, "face-mesh worker error")
		case strings.Contains(line, "[WARNING]"), strings.Contains(line, "[WARN]"):
			log.Warn(log.Fields{"log": line}, "face-mesh worker warning")
		default:
			log.Debug(log.Fields{"log": line}, "face-mesh worker log")
		}
	}
}

// Close stops the worker process and waits for its pipes to drain.
func (w *WorkerSource) Close() error {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.cmd = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
	return nil
}
