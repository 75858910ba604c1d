// Package health provides health checking functionality for the disease
// insights API.
package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/medwatch/disease-insights-api/interfaces"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface. The
// service holds no data between requests, so health is about process state:
// uptime, memory, and whether a text generator is wired in.
type HealthCheckerImpl struct {
	startTime time.Time
	model     string
	ready     bool
}

// NewHealthChecker creates a health checker. ready reports whether the text
// generator was constructed successfully at startup.
func NewHealthChecker(model string, ready bool) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		startTime: time.Now(),
		model:     model,
		ready:     ready,
	}
}

// HealthCheck returns the service status and process statistics.
func (h *HealthCheckerImpl) HealthCheck() (string, map[string]any, int) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := "healthy"
	httpStatus := http.StatusOK
	if !h.ready {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	details := map[string]any{
		"uptime":          time.Since(h.startTime).Round(time.Second).String(),
		"memory_usage_mb": int(m.Alloc / 1024 / 1024),
		"model":           h.model,
		"generator_ready": h.ready,
	}

	return status, details, httpStatus
}
