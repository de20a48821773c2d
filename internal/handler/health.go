// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HariHaran212/Pawradize-sub000/internal/api"
	"github.com/HariHaran212/Pawradize-sub000/internal/identity"
	"github.com/HariHaran212/Pawradize-sub000/internal/model"
	"github.com/HariHaran212/Pawradize-sub000/internal/version"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	backend   *api.Client
	redis     *redis.Client
	startTime time.Time
	timeout   time.Duration
}

// NewHealthHandler creates a new health handler. rdb may be nil.
func NewHealthHandler(db *sql.DB, backend *api.Client, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:        db,
		backend:   backend,
		redis:     rdb,
		startTime: time.Now(),
		timeout:   3 * time.Second,
	}
}

// HealthStatus is the detailed health response shown to super admins.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   version.Info     `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains process-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
}

// Health handles GET /health. Anonymous callers get the overall status only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks(r.Context())
	overall := overallStatus(checks)

	status := http.StatusOK
	if overall == statusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	if identity.FromContext(r.Context()).Role() != model.RoleSuperAdmin {
		writeJSON(w, status, map[string]string{"status": overall})
		return
	}

	resp := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Get(),
		Checks:    checks,
	}
	if r.URL.Query().Get("verbose") == "true" {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		resp.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / 1024 / 1024,
		}
	}
	writeJSON(w, status, resp)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. The service is ready when the
// session database answers; the backend and Redis only degrade it.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	db := h.check(r.Context(), h.pingDB)
	if db.Status != statusHealthy {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) runChecks(ctx context.Context) map[string]Check {
	checks := map[string]Check{
		"database": h.check(ctx, h.pingDB),
		"backend":  h.check(ctx, h.backend.Ping),
	}
	if state := h.backend.BreakerState().String(); state != "closed" {
		checks["backend"] = Check{Status: statusDegraded, Message: "circuit " + state}
	}
	if h.redis != nil {
		checks["redis"] = h.check(ctx, func(ctx context.Context) error {
			return h.redis.Ping(ctx).Err()
		})
	}
	return checks
}

func (h *HealthHandler) pingDB(ctx context.Context) error {
	return h.db.PingContext(ctx)
}

func (h *HealthHandler) check(ctx context.Context, ping func(context.Context) error) Check {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	latency := time.Since(start).Round(time.Microsecond).String()
	if err != nil {
		return Check{Status: statusUnhealthy, Message: err.Error(), Latency: latency}
	}
	return Check{Status: statusHealthy, Latency: latency}
}

// overallStatus is unhealthy when the database is down and degraded when
// any other dependency is.
func overallStatus(checks map[string]Check) string {
	if checks["database"].Status != statusHealthy {
		return statusUnhealthy
	}
	for _, c := range checks {
		if c.Status != statusHealthy {
			return statusDegraded
		}
	}
	return statusHealthy
}
