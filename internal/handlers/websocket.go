package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ALERTNESS/go-backend/internal/alert"
	"ALERTNESS/go-backend/internal/alertness"
	"ALERTNESS/go-backend/internal/landmarks"
	"ALERTNESS/go-backend/internal/models"
	"ALERTNESS/go-backend/internal/services"
	"ALERTNESS/go-backend/internal/session"
	"ALERTNESS/go-backend/pkg/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	sendBuffer     = 256
	frameBuffer    = 2
)

// SessionDeps is what every transport needs to run sessions.
type SessionDeps struct {
	Alertness    alertness.Config
	Detector     landmarks.DetectorOptions
	AlertMessage string
	// Speaker plays alerts on the server. Nil means the remote client speaks
	// them (SPEAK messages or StatusUpdate.Speak).
	Speaker   alert.Speaker
	Metrics   *services.Metrics
	Publisher session.Publisher
	Store     session.Store
}

func (d SessionDeps) Dispatcher(clientSpeaker alert.Speaker) *alert.Dispatcher {
	speaker := d.Speaker
	if speaker == nil {
		speaker = clientSpeaker
	}
	opts := []alert.Option{alert.WithMessage(d.AlertMessage)}
	if d.Metrics != nil {
		opts = append(opts, alert.WithEmitHook(d.Metrics.IncrementAlerts))
	}
	return alert.NewDispatcher(speaker, opts...)
}

func (d SessionDeps) SessionOptions() session.Options {
	opts := session.Options{
		Detector:  d.Detector,
		Config:    d.Alertness,
		Publisher: d.Publisher,
		Store:     d.Store,
	}
	// A nil *services.Metrics must not become a non-nil interface.
	if d.Metrics != nil {
		opts.Metrics = d.Metrics
	}
	return opts
}

// Hub serves browser producers on /ws. Each connection owns at most one
// session fed by the LANDMARKS messages it sends.
type Hub struct {
	deps           SessionDeps
	maxConnections int
	upgrader       websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*wsClient
	count   atomic.Int32
}

func NewHub(deps SessionDeps, maxConnections int) *Hub {
	return &Hub{
		deps:           deps,
		maxConnections: maxConnections,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[string]*wsClient),
	}
}

type wsClient struct {
	hub      *Hub
	conn     *websocket.Conn
	clientID string
	send     chan models.OutboundMessage
	done     chan struct{}

	mu         sync.Mutex
	source     *services.PushSource
	controller *session.Controller
	dispatcher *alert.Dispatcher
}

// ActiveClients returns the number of connected WebSocket clients.
func (h *Hub) ActiveClients() int {
	return int(h.count.Load())
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The slot is reserved before the upgrade and released by unregister.
	if n := h.count.Add(1); h.maxConnections > 0 && int(n) > h.maxConnections {
		h.count.Add(-1)
		writeError(w, http.StatusServiceUnavailable, "Too many connections", "max_connections")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.count.Add(-1)
		log.Warn(log.Fields{"error": err.Error()}, "websocket upgrade failed")
		return
	}

	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		clientID = generateClientID()
	}

	client := &wsClient{
		hub:      h,
		conn:     conn,
		clientID: clientID,
		send:     make(chan models.OutboundMessage, sendBuffer),
		done:     make(chan struct{}),
		source:   services.NewPushSource(frameBuffer),
	}

	h.register(client)
	log.Info(log.Fields{"client_id": clientID}, "WebSocket client connected")

	go client.writePump()

	client.enqueue(models.MsgWelcome, map[string]interface{}{
		"message": "Connected to driver alertness server",
		"version": "1.0",
	})

	client.readPump()

	client.stopSession(false)
	h.unregister(client)
	close(client.done)
	conn.Close()
	log.Info(log.Fields{"client_id": clientID}, "WebSocket client disconnected")
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	if old, ok := h.clients[c.clientID]; ok {
		// A reconnect with the same id replaces the stale connection.
		old.conn.Close()
	}
	h.clients[c.clientID] = c
	h.mu.Unlock()

	if h.deps.Metrics != nil {
		h.deps.Metrics.IncrementWebSocketConnections()
	}
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if h.clients[c.clientID] == c {
		delete(h.clients, c.clientID)
	}
	h.mu.Unlock()
	h.count.Add(-1)

	if h.deps.Metrics != nil {
		h.deps.Metrics.DecrementWebSocketConnections()
	}
}

// CloseAll sends a close frame to every client. Their handlers stop their
// sessions as the connections go down.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.conn.Close()
		log.Info(log.Fields{"client_id": c.clientID}, "closed connection")
	}
}

func generateClientID() string {
	return "client-" + uuid.NewString()
}

func (c *wsClient) readPump() {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg models.WebSocketMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Warn(log.Fields{"client_id": c.clientID, "error": err.Error()}, "WebSocket read error")
				c.countError()
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if c.hub.deps.Metrics != nil {
			c.hub.deps.Metrics.IncrementWebSocketMessages()
		}

		c.handle(msg)
	}
}

func (c *wsClient) handle(msg models.WebSocketMessage) {
	switch msg.Type {
	case models.MsgPing:
		c.enqueue(models.MsgPong, nil)

	case models.MsgStart:
		var p models.StartPayload
		if len(msg.Payload) > 0 && string(msg.Payload) != "null" {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				c.sendError("invalid START payload", "invalid_payload")
				return
			}
		}
		c.startSession(p)

	case models.MsgLandmarks:
		var p models.LandmarksPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.sendError("invalid LANDMARKS payload", "invalid_payload")
			return
		}
		c.pushFrame(p.Result())

	case models.MsgStop:
		c.stopSession(true)

	default:
		log.Debug(log.Fields{"client_id": c.clientID, "type": msg.Type}, "unknown message type")
		c.sendError("unknown message type "+msg.Type, "unknown_type")
	}
}

func (c *wsClient) startSession(p models.StartPayload) {
	cfg := c.hub.deps.Alertness
	if cfg == (alertness.Config{}) {
		cfg = alertness.DefaultConfig()
	}
	if p.EARThreshold != nil {
		cfg.EARThreshold = *p.EARThreshold
	}
	if p.ClosedFrameDebounce != nil {
		cfg.ClosedFrameDebounce = *p.ClosedFrameDebounce
	}
	if cfg.EARThreshold <= 0 || cfg.ClosedFrameDebounce < 0 {
		c.sendError("ear_threshold must be positive and closed_frame_debounce non-negative", "invalid_payload")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.controller != nil && c.controller.Running() {
		c.sendError(session.ErrAlreadyRunning.Error(), "already_running")
		return
	}

	dispatcher := c.hub.deps.Dispatcher(alert.SpeakerFunc(func(_ context.Context, text string) error {
		c.enqueue(models.MsgSpeak, models.SpeakPayload{Text: text})
		return nil
	}))

	opts := c.hub.deps.SessionOptions()
	opts.Source = c.source
	opts.SourceName = "websocket"
	opts.ClientID = c.clientID
	opts.Config = cfg
	opts.Dispatcher = dispatcher
	opts.Sink = alertness.SinkFunc(func(t alertness.Transition) {
		c.enqueue(models.MsgStatus, statusPayload(t))
	})

	controller := session.NewController(opts)
	if err := controller.Start(context.Background()); err != nil {
		dispatcher.Close()
		log.Error(log.Fields{"client_id": c.clientID, "error": err.Error()}, "failed to start session")
		c.sendError(err.Error(), "start_failed")
		return
	}

	c.controller = controller
	c.dispatcher = dispatcher
	c.enqueue(models.MsgSessionStarted, models.SessionPayload{SessionID: controller.Snapshot().ID})
}

// stopSession stops the running session, if any. notify reports the end to
// the client.
func (c *wsClient) stopSession(notify bool) {
	c.mu.Lock()
	controller := c.controller
	dispatcher := c.dispatcher
	c.controller = nil
	c.dispatcher = nil
	c.mu.Unlock()

	if controller == nil {
		return
	}
	if err := controller.Stop(); err != nil {
		log.Warn(log.Fields{"client_id": c.clientID, "error": err.Error()}, "error stopping session")
	}
	if dispatcher != nil {
		dispatcher.Close()
	}

	if notify {
		snap := controller.Snapshot()
		c.enqueue(models.MsgSessionStopped, map[string]interface{}{
			"session_id":       snap.ID,
			"frames_processed": snap.FramesProcessed,
			"frames_skipped":   snap.FramesSkipped,
		})
	}
}

func (c *wsClient) pushFrame(res landmarks.Result) {
	err := c.source.Push(res)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrFrameDropped):
		log.Debug(log.Fields{"client_id": c.clientID, "seq": res.Seq}, "frame dropped, session busy")
	case errors.Is(err, services.ErrSourceClosed):
		// No session; frames are ignored.
	default:
		log.Warn(log.Fields{"client_id": c.clientID, "error": err.Error()}, "failed to push frame")
	}
}

func statusPayload(t alertness.Transition) models.StatusPayload {
	return models.StatusPayload{
		AlertState:      t.Alert.String(),
		DetectionStatus: t.Detection.String(),
		EAR:             t.EAR,
		ClosedFrames:    t.ClosedFrames,
	}
}

func (c *wsClient) sendError(msg, code string) {
	c.enqueue(models.MsgError, models.ErrorResponse{
		Error:     msg,
		Code:      code,
		Timestamp: time.Now().Unix(),
	})
}

// enqueue never blocks; messages for a slow client are dropped.
func (c *wsClient) enqueue(msgType string, payload interface{}) {
	msg := models.OutboundMessage{
		Type:      msgType,
		Payload:   payload,
		ClientID:  c.clientID,
		Timestamp: time.Now().Unix(),
	}

	select {
	case <-c.done:
	case c.send <- msg:
	default:
		log.Warn(log.Fields{"client_id": c.clientID, "type": msgType}, "send buffer full, dropping message")
		c.countError()
	}
}

func (c *wsClient) countError() {
	if c.hub.deps.Metrics != nil {
		c.hub.deps.Metrics.IncrementWebSocketErrors()
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.countError()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
