package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Version   string           `json:"version,omitempty"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// StatsResponse represents system statistics
type StatsResponse struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	Uptime       string `json:"uptime,omitempty"`
}

// Pinger is anything that can report its own reachability.
type Pinger func(ctx context.Context) error

// Handler serves the health endpoints. Checks maps a dependency name to its
// pinger; a nil pinger is skipped.
type Handler struct {
	Version string
	Checks  map[string]Pinger

	startTime time.Time
}

func NewHandler(version string, checks map[string]Pinger) *Handler {
	return &Handler{Version: version, Checks: checks, startTime: time.Now()}
}

// LivenessHandler handles the /health/live endpoint
// Returns 200 if the service is running (for Kubernetes liveness probe)
func (h *Handler) LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessHandler handles the /health/ready endpoint
// Returns 200 if every dependency answers (for Kubernetes readiness probe)
func (h *Handler) ReadinessHandler(c echo.Context) error {
	checks, healthy := h.runChecks(c.Request().Context())

	status, httpStatus := "ok", http.StatusOK
	if !healthy {
		status, httpStatus = "unhealthy", http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
		Checks:    checks,
	})
}

// StatsHandler handles the /health/stats endpoint
func (h *Handler) StatsHandler(c echo.Context) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return c.JSON(http.StatusOK, StatsResponse{
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
		MemAlloc:     m.Alloc,
		MemSys:       m.Sys,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *Handler) runChecks(ctx context.Context) (map[string]Check, bool) {
	checks := make(map[string]Check, len(h.Checks))
	healthy := true
	for name, ping := range h.Checks {
		if ping == nil {
			continue
		}
		check := runCheck(ctx, ping)
		if check.Status != "ok" {
			healthy = false
		}
		checks[name] = check
	}
	return checks, healthy
}

func runCheck(ctx context.Context, ping Pinger) Check {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := ping(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{
			Status:  "error",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{Status: "ok", Latency: latency.String()}
}
