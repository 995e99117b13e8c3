package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"ALERTNESS/go-backend/internal/models"
	"ALERTNESS/go-backend/internal/services"
	"ALERTNESS/go-backend/internal/session"
	"ALERTNESS/go-backend/pkg/log"
)

const version = "1.0"

// HealthChecker is implemented by frame sources that depend on a remote
// service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SessionLister returns persisted session summaries.
type SessionLister interface {
	Recent(ctx context.Context, limit int) ([]models.Session, error)
}

type APIOptions struct {
	// Controller runs the server-side session. Nil disables the session routes.
	Controller *session.Controller
	Metrics    *services.Metrics
	Hub        *Hub
	Detector   HealthChecker
	Sessions   SessionLister
	TokenHash  string
}

// API serves the REST endpoints under /api.
type API struct {
	opts APIOptions
}

func NewAPI(opts APIOptions) *API {
	return &API{opts: opts}
}

// Register mounts the REST routes on mux. Health is always public; the
// other routes require the API token when one is configured.
func (a *API) Register(mux *http.ServeMux) {
	protect := func(h http.HandlerFunc) http.Handler {
		return RequireToken(a.opts.TokenHash, h)
	}

	mux.HandleFunc("/api/health", a.handleHealth)
	mux.Handle("/api/metrics", protect(a.handleMetrics))
	mux.Handle("/api/session", protect(a.handleSession))
	mux.Handle("/api/session/start", protect(a.handleSessionStart))
	mux.Handle("/api/session/stop", protect(a.handleSessionStop))
	mux.Handle("/api/sessions", protect(a.handleSessions))
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "method_not_allowed")
		return false
	}
	return true
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	health := models.HealthStatus{
		Status:    "healthy",
		GoBackend: "running",
		Detector:  "n/a",
		Version:   version,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if a.opts.Hub != nil {
		health.ActiveClients = a.opts.Hub.ActiveClients()
	}
	if a.opts.Metrics != nil {
		health.UptimeSec = int(a.opts.Metrics.Uptime().Seconds())
	}
	if a.opts.Detector != nil {
		if err := a.opts.Detector.HealthCheck(r.Context()); err != nil {
			log.Warn(log.Fields{"error": err.Error()}, "landmark detector unhealthy")
			health.Status = "degraded"
			health.Detector = "unavailable"
		} else {
			health.Detector = "serving"
		}
	}

	writeJSON(w, http.StatusOK, health)
}

func (a *API) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	body := map[string]interface{}{}
	if a.opts.Metrics != nil {
		body = a.opts.Metrics.Snapshot()
	}
	if a.opts.Hub != nil {
		body["active_clients"] = a.opts.Hub.ActiveClients()
	}
	body["timestamp"] = time.Now().Format(time.RFC3339)

	writeJSON(w, http.StatusOK, body)
}

func (a *API) controller(w http.ResponseWriter) *session.Controller {
	if a.opts.Controller == nil {
		writeError(w, http.StatusServiceUnavailable, "No server-side frame source configured", "no_source")
	}
	return a.opts.Controller
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	c := a.controller(w)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, sessionStatus(c.Snapshot()))
}

func (a *API) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	c := a.controller(w)
	if c == nil {
		return
	}

	if err := c.Start(r.Context()); err != nil {
		if errors.Is(err, session.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict, err.Error(), "already_running")
			return
		}
		log.Error(log.Fields{"error": err.Error()}, "failed to start session")
		if a.opts.Metrics != nil {
			a.opts.Metrics.IncrementErrors()
		}
		writeError(w, http.StatusServiceUnavailable, err.Error(), "start_failed")
		return
	}

	writeJSON(w, http.StatusOK, sessionStatus(c.Snapshot()))
}

func (a *API) handleSessionStop(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	c := a.controller(w)
	if c == nil {
		return
	}

	if err := c.Stop(); err != nil {
		log.Warn(log.Fields{"error": err.Error()}, "error stopping session")
	}
	writeJSON(w, http.StatusOK, sessionStatus(c.Snapshot()))
}

func (a *API) handleSessions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	if a.opts.Sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "Session store disabled", "no_store")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sessions, err := a.opts.Sessions.Recent(r.Context(), limit)
	if err != nil {
		log.Error(log.Fields{"error": err.Error()}, "failed to list sessions")
		writeError(w, http.StatusInternalServerError, "Internal server error", "store_error")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func sessionStatus(s session.Snapshot) models.SessionStatus {
	return models.SessionStatus{
		ID:              s.ID,
		Source:          s.Source,
		Active:          s.Active,
		SourceEnded:     s.SourceEnded,
		StartedAt:       s.StartedAt,
		AlertState:      s.State.Alert.String(),
		DetectionStatus: s.State.Detection.String(),
		EAR:             s.State.LastEAR,
		ClosedFrames:    s.State.ClosedFrames,
		FramesProcessed: s.FramesProcessed,
		FramesSkipped:   s.FramesSkipped,
	}
}
