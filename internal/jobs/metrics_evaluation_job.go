package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// MetricsEvaluationJob recomputes the global assignment metrics from the
// full ledger every five minutes, so dashboards stay fresh without an
// explicit evaluation request.
type MetricsEvaluationJob struct {
	handler commands.EvaluateMetricsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewMetricsEvaluationJob creates the periodic metrics evaluation job.
func NewMetricsEvaluationJob(
	handler commands.EvaluateMetricsCommandHandler, logger *slog.Logger,
) *MetricsEvaluationJob {
	return &MetricsEvaluationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "metrics_evaluation_job"),
	}
}

// Start begins the evaluation job, running every five minutes.
func (j *MetricsEvaluationJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewEvaluateMetricsCommand()

		metrics, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Metrics evaluation job failed", "error", err)
			return
		}

		j.logger.DebugContext(ctx, "Metrics evaluated",
			"total_assigned", metrics.TotalAssigned,
			"success_rate", metrics.SuccessRate,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Metrics evaluation job started (running every 5 minutes)")
	return nil
}

// Stop stops the evaluation job.
func (j *MetricsEvaluationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Metrics evaluation job stopped")
}
