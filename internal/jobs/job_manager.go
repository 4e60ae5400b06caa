package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	shiftStatusJob       *ShiftStatusJob
	metricsEvaluationJob *MetricsEvaluationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	flipShiftStatusHandler commands.FlipShiftStatusCommandHandler,
	evaluateMetricsHandler commands.EvaluateMetricsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		shiftStatusJob:       NewShiftStatusJob(flipShiftStatusHandler, logger),
		metricsEvaluationJob: NewMetricsEvaluationJob(evaluateMetricsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.shiftStatusJob.Start(); err != nil {
		return fmt.Errorf("failed to start shift status job: %w", err)
	}

	if err := jm.metricsEvaluationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.shiftStatusJob.Stop()
		return fmt.Errorf("failed to start metrics evaluation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.metricsEvaluationJob.Stop()
	jm.shiftStatusJob.Stop()
}
