package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"farmatime/internal/domain/entity"
	"farmatime/internal/domain/notification"
	"farmatime/internal/domain/repository"
	"farmatime/internal/domain/schedule"
	"farmatime/internal/infrastructure/email"
	"farmatime/internal/pkg/clock"
	"farmatime/internal/pkg/config"
	"farmatime/internal/pkg/crypto"
	appErrors "farmatime/internal/pkg/errors"
	"farmatime/internal/pkg/logger"
)

type runnerService struct {
	userRepo    repository.UserRepository
	requestRepo repository.RequestRepository
	mailer      Mailer
	auditor     Auditor
	clk         clock.Clock
	loc         *time.Location
	cfg         config.JobsConfig
	trackTag    string
	log         logger.Logger
}

// NewRunnerService creates a new instance of RunnerService implementation.
func NewRunnerService(
	userRepo repository.UserRepository,
	requestRepo repository.RequestRepository,
	mailer Mailer,
	auditor Auditor,
	clk clock.Clock,
	cfg config.JobsConfig,
	trackTag string,
	log logger.Logger,
) (RunnerService, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return &runnerService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		mailer:      mailer,
		auditor:     auditor,
		clk:         clk,
		loc:         loc,
		cfg:         cfg,
		trackTag:    trackTag,
		log:         log,
	}, nil
}

// RunJobs executes one full reminder run. Users, jobs and medicines are
// processed strictly sequentially so sends stay ordered and no medicine is
// evaluated twice within a run. Re-entrancy across runs is safe through the
// same-day watermark, not through exclusion.
func (s *runnerService) RunJobs(ctx context.Context) (RunReport, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	// One today for the whole run, in the reference zone.
	today := schedule.DayOf(s.clk.Now(), s.loc)

	report := RunReport{}
	for _, user := range users {
		s.log.Info(fmt.Sprintf("- Processing user %s (%s, %s)", user.ID, user.Email, user.FullName()))

		if user.Email == "" {
			s.log.Warn(fmt.Sprintf("  User %s has no email, skipping it", user.ID))
			continue
		}
		if user.EncryptionKey == "" {
			s.log.Warn(fmt.Sprintf("  User %s has no encryption key, skipping it", user.ID))
			continue
		}
		if user.Jobs == "" {
			s.log.Warn(fmt.Sprintf("  User %s has no jobs data, skipping it", user.ID))
			continue
		}

		var jobs []entity.Job
		if err := crypto.Decrypt(user.Jobs, user.EncryptionKey, &jobs); err != nil {
			return report, fmt.Errorf("%w: user %s: %v", appErrors.ErrDecryptionFailed, user.ID, err)
		}
		template := user.EmailTemplate()

		for _, job := range jobs {
			if !job.IsActive {
				s.log.Info(fmt.Sprintf("  job %s is not active, skipping it", job.ID))
				continue
			}
			if job.Doctor.Name == "" {
				s.log.Info(fmt.Sprintf("  job %s has no doctor name, skipping it", job.ID))
				continue
			}
			if job.Doctor.Email == "" {
				s.log.Info(fmt.Sprintf("  job %s has no doctor email, skipping it", job.ID))
				continue
			}
			if template.Subject == "" {
				s.log.Info(fmt.Sprintf("  job %s has no email template subject, skipping it", job.ID))
				continue
			}
			if template.Body == "" {
				s.log.Info(fmt.Sprintf("  job %s has no email template body, skipping it", job.ID))
				continue
			}

			s.log.Info(fmt.Sprintf(" - Processing job %s", job.ID))
			due := s.collectDue(job, today)

			requests := notification.Aggregate(job, user, template, due, s.cfg.UnifyRequests)
			for _, request := range requests {
				if err := s.dispatch(ctx, user, job, jobs, request, today); err != nil {
					// First failure aborts the entire run; notifications
					// already sent are not rolled back.
					return report, err
				}
				report.RequestsSent++
			}
		}
	}

	s.log.Info("- Done processing all users jobs medicines.")
	s.auditor.Audit("Processed all users jobs medicines", fmt.Sprintf("Sent %d request(s).", report.RequestsSent))
	return report, nil
}

// collectDue evaluates every medicine of a job against today. Incomplete
// schedules are skipped silently, logged only.
func (s *runnerService) collectDue(job entity.Job, today schedule.Day) []entity.Medicine {
	var due []entity.Medicine
	for _, medicine := range job.Medicines {
		s.log.Info(fmt.Sprintf("  - Processing medicine %s (%s)", medicine.ID, medicine.Name))

		if medicine.SinceDate == nil {
			s.log.Info(fmt.Sprintf("  medicine %s has no since date, skipping it", medicine.ID))
			continue
		}
		if medicine.FrequencyDays < 1 {
			s.log.Info(fmt.Sprintf("  medicine %s has no valid frequency, skipping it", medicine.ID))
			continue
		}

		last := schedule.Unsent()
		if medicine.LastSentDate != nil {
			last = schedule.SentOn(schedule.DayOf(*medicine.LastSentDate, s.loc))
		}
		sc := schedule.Schedule{
			Since:         schedule.DayOf(*medicine.SinceDate, s.loc),
			FrequencyDays: medicine.FrequencyDays,
			Last:          last,
		}

		if !schedule.Evaluate(sc, today) {
			s.log.Info(fmt.Sprintf("    medicine %s is not due, skipping it", medicine.ID))
			continue
		}
		s.log.Info(fmt.Sprintf("    medicine %s is due", medicine.ID))
		due = append(due, medicine)
	}
	return due
}

// dispatch sends one notification request, records it, and persists the
// watermark for its medicines. Ordering matters: the watermark is written
// only after the send succeeded, so a failed send never advances state. A
// persistence failure after the send leaves an accepted inconsistency window
// (the email is out, the watermark is not) and surfaces as an error.
func (s *runnerService) dispatch(
	ctx context.Context,
	user *entity.User,
	job entity.Job,
	jobs []entity.Job,
	request notification.Request,
	today schedule.Day,
) error {
	messageID, err := s.mailer.Send(ctx, email.SendParams{
		To:          request.To,
		ToName:      request.ToName,
		FromName:    request.FromName,
		ReplyTo:     request.ReplyTo,
		ReplyToName: request.ReplyToName,
		Subject:     request.Subject,
		HTMLContent: request.HTMLContent,
		Tags:        []string{s.trackTag},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrEmailSend, err)
	}
	s.log.Info("    request sent via email")

	if err := s.recordRequest(ctx, user, job, request, messageID); err != nil {
		return err
	}

	sentAt := today.Time()
	for ji := range jobs {
		if jobs[ji].ID != job.ID {
			continue
		}
		for mi := range jobs[ji].Medicines {
			if slices.Contains(request.MedicineIDs, jobs[ji].Medicines[mi].ID) {
				jobs[ji].Medicines[mi].LastSentDate = &sentAt
			}
		}
	}

	blob, err := crypto.Encrypt(jobs, user.EncryptionKey)
	if err != nil {
		return fmt.Errorf("%w: user %s: %v", appErrors.ErrInternalServer, user.ID, err)
	}
	if err := s.userRepo.UpdateJobs(ctx, user.ID, blob); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	user.Jobs = blob
	s.log.Info("    updated medicine last sent date")
	return nil
}

func (s *runnerService) recordRequest(
	ctx context.Context,
	user *entity.User,
	job entity.Job,
	request notification.Request,
	messageID string,
) error {
	snapshot := make([]entity.RequestMedicine, 0, len(request.MedicineIDs))
	for _, medicine := range job.Medicines {
		if !slices.Contains(request.MedicineIDs, medicine.ID) {
			continue
		}
		snapshot = append(snapshot, entity.RequestMedicine{
			ID:    medicine.ID,
			Name:  medicine.Name,
			Since: medicine.SinceDate,
			Every: medicine.FrequencyDays,
		})
	}
	medicines, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}

	record := &entity.Request{
		UserID:            user.ID,
		JobID:             job.ID,
		Provider:          email.Provider,
		ProviderMessageID: messageID,
		UserFirstName:     user.FirstName,
		UserLastName:      user.LastName,
		PatientFirstName:  job.Patient.FirstName,
		PatientLastName:   job.Patient.LastName,
		PatientEmail:      job.Patient.Email,
		DoctorName:        job.Doctor.Name,
		DoctorEmail:       job.Doctor.Email,
		Medicines:         string(medicines),
		LastStatus:        "created",
		LastReason:        "",
	}
	if _, err := s.requestRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("New request created for job %s (message id %s)", job.ID, messageID))
	return nil
}
