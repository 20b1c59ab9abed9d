package service

// SchedulerService defines the interface for the optional in-process trigger
// that fires reminder runs on a cron cadence.
type SchedulerService interface {
	// Start registers the run on the cron scheduler. A no-op when no cron
	// spec is configured (the external worker trigger is used instead).
	Start() error
	// Stop stops the underlying scheduler.
	Stop()
}
