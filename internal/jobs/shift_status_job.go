package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShiftStatusJob sweeps schedulable partners once a minute, clocking them
// in or out as the wall clock crosses their shift windows.
type ShiftStatusJob struct {
	handler commands.FlipShiftStatusCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewShiftStatusJob creates the shift sweep job. Uses
// FlipShiftStatusCommandHandler to flip partner availability every minute.
func NewShiftStatusJob(handler commands.FlipShiftStatusCommandHandler, logger *slog.Logger) *ShiftStatusJob {
	return &ShiftStatusJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "shift_status_job"),
	}
}

// Start begins the shift sweep, running at the top of every minute.
func (j *ShiftStatusJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewFlipShiftStatusCommand()

		flipped, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Shift status sweep failed", "error", err)
			return
		}

		if flipped > 0 {
			j.logger.InfoContext(ctx, "Shift status sweep flipped partners", "count", flipped)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shift status job started (running every minute)")
	return nil
}

// Stop stops the shift sweep.
func (j *ShiftStatusJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shift status job stopped")
}
