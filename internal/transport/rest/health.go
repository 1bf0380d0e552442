package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

const dbPingTimeout = 2 * time.Second

type componentStatus string

const (
	statusUp   componentStatus = "up"
	statusDown componentStatus = "down"
)

type componentCheck struct {
	Status    componentStatus `json:"status"`
	Error     string          `json:"error,omitempty"`
	LatencyMs int64           `json:"latency_ms"`
	Details   map[string]any  `json:"details,omitempty"`
}

type readinessResponse struct {
	Status    componentStatus           `json:"status"`
	CheckedAt time.Time                 `json:"checked_at"`
	Checks    map[string]componentCheck `json:"checks"`
}

// HealthHandler serves liveness and readiness probes against the shared
// connection pool the server was bootstrapped with.
type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Ping reports process liveness without touching any dependency.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Readiness pings the database within a short timeout and reports pool usage.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
	defer cancel()

	start := time.Now()
	pingErr := h.db.PingContext(ctx)
	stats := h.db.Stats()

	check := componentCheck{
		Status:    statusUp,
		LatencyMs: time.Since(start).Milliseconds(),
		Details: map[string]any{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		},
	}
	if pingErr != nil {
		check.Status = statusDown
		check.Error = pingErr.Error()
	}

	resp := readinessResponse{
		Status:    check.Status,
		CheckedAt: time.Now(),
		Checks:    map[string]componentCheck{"database": check},
	}

	statusCode := http.StatusOK
	if resp.Status == statusDown {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
