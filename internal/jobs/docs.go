// Package jobs provides scheduled background tasks for the order
// processing system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the service needs.
//
// # Available Jobs
//
// 1. OverdueOrdersJob - Runs every minute to report orders past their
// promised ready-by deadline that have not reached the ready stage
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(orderRepository, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The overdue sweep is read-only. Sweep failures are logged and the next
// scheduled run retries; a failed job start stops the application.
package jobs
