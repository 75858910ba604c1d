// Package scheduler runs the background maintenance jobs of the disease
// insights API: the daily log-retention sweep and the periodic runtime
// metrics refresh. Nothing here touches request handling; the request path
// stays strictly sequential.
package scheduler

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/medwatch/disease-insights-api/interfaces"
	"github.com/medwatch/disease-insights-api/logging"
	"github.com/medwatch/disease-insights-api/metrics"
)

// MaintenanceScheduler implements interfaces.Scheduler on top of gocron.
type MaintenanceScheduler struct {
	scheduler *gocron.Scheduler
	logDir    string
	retention time.Duration
}

// Compile-time check to ensure MaintenanceScheduler implements Scheduler
var _ interfaces.Scheduler = (*MaintenanceScheduler)(nil)

// NewMaintenanceScheduler creates a scheduler sweeping logDir with the given
// retention in weeks.
func NewMaintenanceScheduler(logDir string, retentionWeeks int) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		scheduler: gocron.NewScheduler(time.Local),
		logDir:    logDir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
	}
}

// Start registers the jobs and runs the scheduler asynchronously.
func (s *MaintenanceScheduler) Start() error {
	// Log retention sweep, daily at 03:30
	_, err := s.scheduler.Every(1).Days().At("03:30").Do(func() {
		removed, err := logging.CleanupOldLogs(s.logDir, s.retention)
		if err != nil {
			logging.Error("Log cleanup failed", "error", err)
			return
		}
		if removed > 0 {
			logging.Info("Log cleanup completed", "files_removed", removed)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule log cleanup: %w", err)
	}

	// Runtime memory gauge refresh
	_, err = s.scheduler.Every(1).Minutes().Do(func() {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		metrics.RuntimeMemoryBytes.Set(float64(m.Alloc))
	})
	if err != nil {
		return fmt.Errorf("failed to schedule metrics refresh: %w", err)
	}

	s.scheduler.StartAsync()
	logging.Info("Maintenance scheduler started",
		"log_dir", s.logDir,
		"retention", s.retention.String())

	return nil
}

// Stop stops the scheduler
func (s *MaintenanceScheduler) Stop() {
	s.scheduler.Stop()
}
