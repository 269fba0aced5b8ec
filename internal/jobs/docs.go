// Package jobs provides scheduled background tasks for the order marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the marketplace.
//
// # Available Jobs
//
// 1. OrderBroadcastJob - Re-announces pending orders that have gone unclaimed
// past a configured age, so transporters who missed the original announcement
// get another chance to claim them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(broadcastHandler, "0 * * * * *", 10*time.Minute, 50, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The broadcast schedule is a six-field cron expression (seconds included).
// The default "0 * * * * *" runs once a minute, which keeps announcement
// traffic low while still resurfacing stale orders promptly.
//
// # Error Handling
//
// A failed broadcast run is logged and retried on the next tick. Duplicate
// announcements are harmless: claim correctness is enforced at acceptance
// time, not at announcement time.
package jobs
