package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// DirectoryPinger reports whether the HR directory link is usable. The
// readiness probe treats directory failures as degraded, not fatal: the
// API keeps serving already-provisioned users when HR is down.
type DirectoryPinger interface {
	EnsureConnected(ctx context.Context) error
}

type HealthHandler struct {
	db  *sql.DB
	dir DirectoryPinger
}

func NewHealthHandler(db *sql.DB, dir DirectoryPinger) *HealthHandler {
	return &HealthHandler{db: db, dir: dir}
}

// pingHandler just says the service is up
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler checks the database and the directory link
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]CheckEntry{}

	start := time.Now()
	dbEntry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err := h.db.PingContext(ctx); err != nil {
		dbEntry.Status = HealthUnhealthy
		dbEntry.Message = err.Error()
	}
	dbEntry.DurationMs = time.Since(start).Milliseconds()
	components["postgres"] = dbEntry

	if h.dir != nil {
		dirStart := time.Now()
		dirEntry := CheckEntry{
			Status:    HealthHealthy,
			CheckedAt: time.Now(),
		}
		if err := h.dir.EnsureConnected(ctx); err != nil {
			dirEntry.Status = HealthUnhealthy
			dirEntry.Message = err.Error()
		}
		dirEntry.DurationMs = time.Since(dirStart).Milliseconds()
		components["hr_directory"] = dirEntry
	}

	// overall status follows the database only
	resp := HealthResponse{
		Status:     components["postgres"].Status,
		CheckedAt:  time.Now(),
		Components: components,
	}

	statusCode := http.StatusOK
	if resp.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
