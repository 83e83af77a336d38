// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/olegiv/bandsite/internal/cache"
	"github.com/olegiv/bandsite/internal/session"
	"github.com/olegiv/bandsite/internal/version"
)

// minFreeDiskBytes is the free space below which uploads are reported
// as degraded.
const minFreeDiskBytes = 100 << 20

// HealthHandler handles health check requests.
type HealthHandler struct {
	api       *Handler
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(api *Handler, db *sql.DB) *HealthHandler {
	return &HealthHandler{api: api, db: db, startTime: time.Now()}
}

// HealthStatus is the detailed health report shown to admins.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   version.Info     `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains runtime information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
}

// Health handles GET /health. Anonymous callers get the overall status;
// signed-in admins also get the individual checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.checkDatabase(r.Context()),
		"disk":     h.checkDiskSpace(),
	}

	overall := "healthy"
	for _, c := range checks {
		if c.Status != "healthy" {
			overall = "degraded"
		}
	}

	status := http.StatusOK
	if overall != "healthy" {
		status = http.StatusServiceUnavailable
	}

	if !h.isAdmin(r) {
		WriteJSON(w, status, map[string]string{"status": overall})
		return
	}

	report := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Current(),
		Checks:    checks,
	}
	if sp, ok := h.api.Cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		report.Cache = &stats
	}
	if r.URL.Query().Get("verbose") == "true" {
		report.System = systemInfo()
	}
	WriteJSON(w, status, report)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if c := h.checkDatabase(r.Context()); c.Status != "healthy" {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) isAdmin(r *http.Request) bool {
	if h.api.Sessions == nil || h.api.Auth == nil {
		return false
	}
	adminID := session.AdminID(r.Context(), h.api.Sessions)
	if adminID == 0 {
		return false
	}
	_, err := h.api.Auth.ResolveSession(r.Context(), adminID)
	return err == nil
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Connected", Latency: latency.String()}
}

func (h *HealthHandler) checkDiskSpace() Check {
	dir := h.api.UploadsDir
	if dir == "" {
		return Check{Status: "healthy", Message: "No uploads directory configured"}
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return Check{Status: "healthy", Message: "Uploads directory does not exist yet"}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(dir, &stat); err != nil {
		return Check{Status: "unhealthy", Message: "Failed to check disk space: " + err.Error()}
	}

	available := stat.Bavail * uint64(stat.Bsize)
	if available < minFreeDiskBytes {
		return Check{Status: "unhealthy", Message: "Low disk space: " + formatBytes(available) + " available"}
	}
	return Check{Status: "healthy", Message: formatBytes(available) + " available"}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
	}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
