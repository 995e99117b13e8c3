package alert

import (
	"context"
	"errors"
	"sync"

	"ALERTNESS/go-backend/pkg/log"
)

// DefaultMessage is the phrase spoken when a driver is found drowsy.
const DefaultMessage = "Wake up! You are feeling sleepy!"

// Speaker plays one utterance and returns when it finishes or ctx is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Dispatcher speaks the wake-up message. Each Emit interrupts the utterance
// started by the previous one. Speech errors are logged and dropped.
type Dispatcher struct {
	speaker Speaker
	message string
	onEmit  func()

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Dispatcher)

// WithMessage overrides DefaultMessage.
func WithMessage(msg string) Option {
	return func(d *Dispatcher) {
		if msg != "" {
			d.message = msg
		}
	}
}

// WithEmitHook registers fn to run synchronously on every Emit.
func WithEmitHook(fn func()) Option {
	return func(d *Dispatcher) {
		d.onEmit = fn
	}
}

func NewDispatcher(speaker Speaker, opts ...Option) *Dispatcher {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	d := &Dispatcher{
		speaker: speaker,
		message: DefaultMessage,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Emit cancels any running utterance and starts a new one without blocking.
func (d *Dispatcher) Emit() {
	if d.onEmit != nil {
		d.onEmit()
	}

	ctx, cancel := context.WithCancel(context.Background())

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.speaker.Speak(ctx, d.message); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn(log.Fields{"error": err.Error()}, "alert speech failed")
		}
	}()
}

// Close interrupts the current utterance and waits for it to return.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// NopSpeaker discards utterances.
type NopSpeaker struct{}

func (NopSpeaker) Speak(context.Context, string) error { return nil }

// SpeakerFunc adapts a function to Speaker.
type SpeakerFunc func(ctx context.Context, text string) error

func (f SpeakerFunc) Speak(ctx context.Context, text string) error { return f(ctx, text) }
