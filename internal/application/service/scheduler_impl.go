package service

import (
	"context"
	"fmt"

	"farmatime/internal/infrastructure/scheduler"
	appErrors "farmatime/internal/pkg/errors"
	"farmatime/internal/pkg/logger"
)

type schedulerService struct {
	cronScheduler *scheduler.Scheduler
	runner        RunnerService
	cronSpec      string
	log           logger.Logger
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
// cronSpec uses the cron format with seconds; empty disables the in-process
// trigger.
func NewSchedulerService(
	cronScheduler *scheduler.Scheduler,
	runner RunnerService,
	cronSpec string,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		cronScheduler: cronScheduler,
		runner:        runner,
		cronSpec:      cronSpec,
		log:           log,
	}
}

// Start registers the reminder run on the cron scheduler.
func (s *schedulerService) Start() error {
	if s.cronSpec == "" {
		s.log.Info("RUN_JOBS_CRON not set, relying on the external worker trigger.")
		return nil
	}

	_, err := s.cronScheduler.AddJob(s.cronSpec, func() {
		report, err := s.runner.RunJobs(context.Background())
		if err != nil {
			s.log.Error("Scheduled reminder run failed", err)
			return
		}
		s.log.Info(fmt.Sprintf("Scheduled reminder run complete, sent %d request(s).", report.RequestsSent))
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.log.Info(fmt.Sprintf("Reminder run scheduled with spec %q", s.cronSpec))
	return nil
}

// Stop stops the underlying scheduler.
func (s *schedulerService) Stop() {
	s.cronScheduler.Stop()
}
