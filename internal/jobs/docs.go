// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// Two jobs run in production:
//
//  1. ShiftStatusJob - every minute, clocks partners in or out as the wall
//     clock enters or leaves their shift windows
//  2. MetricsEvaluationJob - every five minutes, recomputes the global
//     assignment metrics from the full ledger
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(flipShiftStatusHandler, evaluateMetricsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A failed job start stops any jobs already running, so StartAll either
// brings up the full set or none of it.
package jobs
