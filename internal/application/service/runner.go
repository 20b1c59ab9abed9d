package service

import (
	"context"

	"farmatime/internal/infrastructure/email"
)

// RunReport summarizes one reminder run.
type RunReport struct {
	RequestsSent int
}

// RunnerService defines the interface for the reminder run: iterate every
// user, every active job, every medicine; send what is due; persist the
// watermarks.
type RunnerService interface {
	// RunJobs executes one full reminder run. The first send or persistence
	// failure aborts the remainder of the run; the report still counts what
	// went out before the failure.
	RunJobs(ctx context.Context) (RunReport, error)
}

// Mailer is the outbound notification port. Implemented by the email client;
// tests substitute a fake.
type Mailer interface {
	Send(ctx context.Context, params email.SendParams) (string, error)
}

// Auditor receives fire-and-forget run summaries.
type Auditor interface {
	Audit(subject, htmlContent string)
}
