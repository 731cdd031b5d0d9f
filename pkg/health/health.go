package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker is a function that checks the health of a dependency.
type Checker func(ctx context.Context) error

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the JSON body returned by the health endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the result of a single health check.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Handler provides HTTP health check endpoints.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewHandler creates a new health check handler.
func NewHandler() *Handler {
	return &Handler{checkers: make(map[string]Checker)}
}

// Register adds a named health checker.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// LivenessHandler returns a liveness check that reports up while the process runs.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler checks all registered dependencies and returns 200 or 503.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h.mu.RLock()
		checkers := make(map[string]Checker, len(h.checkers))
		for name, c := range h.checkers {
			checkers[name] = c
		}
		h.mu.RUnlock()

		checks := make(map[string]CheckResult, len(checkers))
		overall := StatusUp

		for name, checker := range checkers {
			if err := checker(ctx); err != nil {
				checks[name] = CheckResult{Status: StatusDown, Error: err.Error()}
				overall = StatusDown
			} else {
				checks[name] = CheckResult{Status: StatusUp}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if overall == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(Response{
			Status:    overall,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		})
	}
}
