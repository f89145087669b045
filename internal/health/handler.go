// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/user-registry/internal/core"
)

const (
	StatusHealthy   = "Healthy"
	StatusUnhealthy = "Unhealthy"
)

// ConnectionChecker reports core.StatusConnected or a human readable failure.
type ConnectionChecker interface {
	CheckConnection(ctx context.Context) string
}

type Handler struct {
	db       ConnectionChecker
	timeout  time.Duration
	shutdown atomic.Bool
}

func NewHandler(db ConnectionChecker) *Handler {
	return &Handler{
		db:      db,
		timeout: 5 * time.Second,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

// Health always answers 200. Callers inspect the body for the verdict.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeStatus(w, http.StatusOK, h.Report(r.Context()))
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	h.writeStatus(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeStatus(w, http.StatusServiceUnavailable, StatusResponse{
			Status: "shutting_down",
		})
		return
	}

	report := h.Report(r.Context())

	code := http.StatusOK
	if report.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}

	h.writeStatus(w, code, report)
}

func (h *Handler) Report(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	dbStatus := "database checker not configured"
	if h.db != nil {
		dbStatus = h.db.CheckConnection(ctx)
	}

	report := Report{
		Status: StatusHealthy,
		Dependencies: map[string]string{
			"database": dbStatus,
		},
	}

	for _, status := range report.Dependencies {
		if status != core.StatusConnected {
			report.Status = StatusUnhealthy
			break
		}
	}

	return report
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) writeStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(data)
}

type StatusResponse struct {
	Status string `json:"status"`
}

type Report struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}
