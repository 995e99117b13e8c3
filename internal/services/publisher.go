package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/pkg/log"
)

// redisWriter is the part of *redis.Client the publisher uses.
type redisWriter interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

type statusEvent struct {
	SessionID       string  `json:"session_id"`
	AlertState      string  `json:"alert_state"`
	DetectionStatus string  `json:"detection_status"`
	EAR             float64 `json:"ear"`
	ClosedFrames    int     `json:"closed_frames"`
	Timestamp       int64   `json:"timestamp"`
}

// StatusPublisher forwards status transitions to Redis: each one is
// published on <prefix>:<session id> and kept as the session's latest status
// under <prefix>:status:<session id>. Publishing happens on a background
// goroutine; events are dropped when the queue is full.
type StatusPublisher struct {
	client  redisWriter
	prefix  string
	ttl     time.Duration
	metrics *Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan statusEvent
	wg     sync.WaitGroup
}

func NewStatusPublisher(addr, password string, db int, prefix string, metrics *Metrics) (*StatusPublisher, error) {
	log.Info(log.Fields{"addr": addr}, "connecting to redis")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Info(log.Fields{"addr": addr}, "connected to redis")
	return newStatusPublisher(client, prefix, 256, metrics), nil
}

func newStatusPublisher(client redisWriter, prefix string, buffer int, metrics *Metrics) *StatusPublisher {
	p := &StatusPublisher{
		client:  client,
		prefix:  prefix,
		ttl:     time.Hour,
		metrics: metrics,
		queue:   make(chan statusEvent, buffer),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Publish enqueues a transition without blocking.
func (p *StatusPublisher) Publish(sessionID string, t alertness.Transition) {
	ev := statusEvent{
		SessionID:       sessionID,
		AlertState:      t.Alert.String(),
		DetectionStatus: t.Detection.String(),
		EAR:             t.EAR,
		ClosedFrames:    t.ClosedFrames,
		Timestamp:       time.Now().Unix(),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	select {
	case p.queue <- ev:
	default:
		log.Warn(log.Fields{"session_id": sessionID}, "status publish queue full, dropping event")
	}
}

func (p *StatusPublisher) run() {
	defer p.wg.Done()

	for ev := range p.queue {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = p.client.Publish(ctx, p.prefix+":"+ev.SessionID, payload).Err()
		if err == nil {
			err = p.client.Set(ctx, p.prefix+":status:"+ev.SessionID, payload, p.ttl).Err()
		}
		cancel()

		if err != nil {
			if p.metrics != nil {
				p.metrics.IncrementErrors()
			}
			log.Warn(log.Fields{"session_id": ev.SessionID, "error": err.Error()}, "failed to publish status")
		}
	}
}

// Close drains queued events and closes the client.
func (p *StatusPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.client.Close()
}
