// Package health serves the probe endpoints of the local HTTP services: /health reports
// what the service holds, /health/live answers while the process runs and /health/ready
// fails while a registered check fails.
package health

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"cadastro/internal/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc returns nil while the dependency it watches is usable.
type CheckFunc func() error

// StatsFunc reports the service's own counters, such as records held or requests served.
type StatsFunc func() map[string]int

type Option func(*Handler)

// WithStats adds the counters from fn to every /health answer.
func WithStats(fn StatsFunc) Option {
	return func(h *Handler) {
		h.stats = fn
	}
}

type Handler struct {
	service string
	started time.Time
	stats   StatsFunc

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

func New(service string, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		started: time.Now(),
		checks:  make(map[string]CheckFunc),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterCheck adds or replaces the readiness check called name.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.handleStatus)
	r.Get("/health/live", h.handleLive)
	r.Get("/health/ready", h.handleReady)
}

type Status struct {
	Service       string         `json:"service"`
	Version       string         `json:"version"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Stats         map[string]int `json:"stats,omitempty"`
}

type Readiness struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := Status{
		Service:       h.service,
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	if h.stats != nil {
		st.Stats = h.stats()
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) handleLive(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReady(w http.ResponseWriter, _ *http.Request) {
	rd := h.Ready()
	status := http.StatusOK
	if !rd.Ready {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, rd)
}

// Ready runs every check in name order.
func (h *Handler) Ready() Readiness {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	checks := make([]CheckFunc, 0, len(names))
	slices.Sort(names)
	for _, name := range names {
		checks = append(checks, h.checks[name])
	}
	h.mu.RUnlock()

	rd := Readiness{Ready: true, Checks: make(map[string]string, len(names))}
	for i, check := range checks {
		if err := check(); err != nil {
			rd.Checks[names[i]] = err.Error()
			rd.Ready = false
			continue
		}
		rd.Checks[names[i]] = "ok"
	}
	return rd
}
