package jobs

import (
	"fmt"
	"log/slog"

	"ordering/internal/pkg/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderStatsJob *OrderStatsJob
}

// NewJobManager wires the jobs to their query handlers.
func NewJobManager(
	orderStatsHandler OrderStatsHandler,
	m *metrics.Metrics,
	orderStatsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderStatsJob: NewOrderStatsJob(orderStatsHandler, m, orderStatsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start order stats job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderStatsJob.Stop()
}
