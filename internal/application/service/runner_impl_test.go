package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"farmatime/internal/domain/entity"
	"farmatime/internal/infrastructure/email"
	"farmatime/internal/pkg/clock"
	"farmatime/internal/pkg/config"
	"farmatime/internal/pkg/crypto"
	appErrors "farmatime/internal/pkg/errors"
	"farmatime/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, appErrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error {
	return nil
}

func (r *fakeUserRepo) UpdateJobs(_ context.Context, userID string, jobsBlob string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.Jobs = jobsBlob
			return nil
		}
	}
	return appErrors.ErrUserNotFound
}

type fakeRequestRepo struct {
	records []*entity.Request
}

func (r *fakeRequestRepo) Create(_ context.Context, request *entity.Request) (uint, error) {
	request.ID = uint(len(r.records) + 1)
	r.records = append(r.records, request)
	return request.ID, nil
}

func (r *fakeRequestRepo) FindByUserID(_ context.Context, userID string) ([]*entity.Request, error) {
	var out []*entity.Request
	for _, record := range r.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindAll(_ context.Context) ([]*entity.Request, error) {
	return r.records, nil
}

type fakeMailer struct {
	sent    []email.SendParams
	failRun bool
}

func (m *fakeMailer) Send(_ context.Context, params email.SendParams) (string, error) {
	if m.failRun {
		return "", errors.New("provider unavailable")
	}
	m.sent = append(m.sent, params)
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

type fakeAuditor struct {
	summaries []string
}

func (a *fakeAuditor) Audit(_, htmlContent string) {
	a.summaries = append(a.summaries, htmlContent)
}

func jobsConfig() config.JobsConfig {
	return config.JobsConfig{
		EncryptionKeySecret: "pepper",
		UnifyRequests:       true,
		MaxRequestsPerUser:  100,
		Timezone:            "UTC",
	}
}

func encryptJobs(t *testing.T, key string, jobs []entity.Job) string {
	t.Helper()
	blob, err := crypto.Encrypt(jobs, key)
	require.NoError(t, err)
	return blob
}

func decryptJobs(t *testing.T, key, blob string) []entity.Job {
	t.Helper()
	var jobs []entity.Job
	require.NoError(t, crypto.Decrypt(blob, key, &jobs))
	return jobs
}

func dateOf(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestUser(t *testing.T, jobs []entity.Job) *entity.User {
	t.Helper()
	key := crypto.DeriveKey("user-1", "pepper")
	return &entity.User{
		ID:              "user-1",
		Email:           "mario@example.test",
		FirstName:       "Mario",
		LastName:        "Verdi",
		EncryptionKey:   key,
		Jobs:            encryptJobs(t, key, jobs),
		TemplateSubject: "Refill request",
		TemplateBody:    "Dear [DOCTOR NAME], please refill [MEDICINE NAME] for [PATIENT NAME].",
	}
}

func activeJob(medicines ...entity.Medicine) entity.Job {
	return entity.Job{
		ID:        "job-1",
		IsActive:  true,
		Doctor:    entity.Doctor{Name: "Dr. Rossi", Email: "rossi@clinic.test"},
		Patient:   entity.Patient{FirstName: "Anna", LastName: "Bianchi", Email: "anna@example.test"},
		Medicines: medicines,
	}
}

func newRunner(t *testing.T, users *fakeUserRepo, requests *fakeRequestRepo, mailer *fakeMailer, auditor *fakeAuditor, cfg config.JobsConfig, now time.Time) RunnerService {
	t.Helper()
	runner, err := NewRunnerService(users, requests, mailer, auditor, clock.NewMockClock(now), cfg, "test-tag", logger.New("error"))
	require.NoError(t, err)
	return runner
}

func TestRunJobsSendsDueReminderAndIsIdempotentSameDay(t *testing.T) {
	user := newTestUser(t, []entity.Job{activeJob(entity.Medicine{
		ID:            "med-1",
		Name:          "Aspirin",
		SinceDate:     dateOf(2024, time.January, 1),
		FrequencyDays: 7,
	})})
	users := &fakeUserRepo{users: []*entity.User{user}}
	requests := &fakeRequestRepo{}
	mailer := &fakeMailer{}
	auditor := &fakeAuditor{}
	now := time.Date(2024, time.January, 8, 10, 30, 0, 0, time.UTC)

	runner := newRunner(t, users, requests, mailer, auditor, jobsConfig(), now)

	report, err := runner.RunJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.RequestsSent)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "rossi@clinic.test", mailer.sent[0].To)
	assert.Equal(t, "anna@example.test", mailer.sent[0].ReplyTo)
	assert.Equal(t, "Dear Dr. Rossi, please refill Aspirin for Anna Bianchi.", mailer.sent[0].HTMLContent)
	assert.Equal(t, []string{"test-tag"}, mailer.sent[0].Tags)

	// watermark set to the run day
	jobs := decryptJobs(t, user.EncryptionKey, user.Jobs)
	require.NotNil(t, jobs[0].Medicines[0].LastSentDate)
	assert.Equal(t, time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC), *jobs[0].Medicines[0].LastSentDate)

	// request record persisted
	require.Len(t, requests.records, 1)
	assert.Equal(t, "brevo", requests.records[0].Provider)
	assert.Equal(t, "msg-1", requests.records[0].ProviderMessageID)
	assert.Equal(t, "created", requests.records[0].LastStatus)
	assert.Contains(t, requests.records[0].Medicines, `"id":"med-1"`)

	// audit summary observed
	assert.Equal(t, []string{"Sent 1 request(s)."}, auditor.summaries)

	// same day again: nothing is due
	report, err = runner.RunJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.RequestsSent)
	assert.Len(t, mailer.sent, 1)
}

func TestRunJobsSeparateRequestsPerMedicine(t *testing.T) {
	since := dateOf(2024, time.January, 1)
	user := newTestUser(t, []entity.Job{activeJob(
		entity.Medicine{ID: "med-1", Name: "Aspirin", SinceDate: since, FrequencyDays: 7},
		entity.Medicine{ID: "med-2", Name: "Ibuprofen", SinceDate: since, FrequencyDays: 7},
		entity.Medicine{ID: "med-3", Name: "Paracetamol", SinceDate: since, FrequencyDays: 7},
	)})
	users := &fakeUserRepo{users: []*entity.User{user}}
	mailer := &fakeMailer{}
	cfg := jobsConfig()
	cfg.UnifyRequests = false
	now := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	runner := newRunner(t, users, &fakeRequestRepo{}, mailer, &fakeAuditor{}, cfg, now)

	report, err := runner.RunJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.RequestsSent)
	require.Len(t, mailer.sent, 3)
	for i, name := range []string{"Aspirin", "Ibuprofen", "Paracetamol"} {
		assert.Contains(t, mailer.sent[i].HTMLContent, name)
	}

	// each medicine got its own watermark
	jobs := decryptJobs(t, user.EncryptionKey, user.Jobs)
	for _, medicine := range jobs[0].Medicines {
		require.NotNil(t, medicine.LastSentDate)
	}
}

func TestRunJobsUnifiedRequestForJob(t *testing.T) {
	since := dateOf(2024, time.January, 1)
	user := newTestUser(t, []entity.Job{activeJob(
		entity.Medicine{ID: "med-1", Name: "Aspirin", SinceDate: since, FrequencyDays: 7},
		entity.Medicine{ID: "med-2", Name: "Ibuprofen", SinceDate: since, FrequencyDays: 7},
	)})
	users := &fakeUserRepo{users: []*entity.User{user}}
	mailer := &fakeMailer{}
	now := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	runner := newRunner(t, users, &fakeRequestRepo{}, mailer, &fakeAuditor{}, jobsConfig(), now)

	report, err := runner.RunJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.RequestsSent)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTMLContent, "Aspirin<br />Ibuprofen")
}

func TestRunJobsSendFailureAbortsRunWithoutWatermark(t *testing.T) {
	user := newTestUser(t, []entity.Job{activeJob(entity.Medicine{
		ID: "med-1", Name: "Aspirin", SinceDate: dateOf(2024, time.January, 1), FrequencyDays: 7,
	})})
	other := newTestUser(t, nil)
	other.ID = "user-2"
	other.EncryptionKey = crypto.DeriveKey("user-2", "pepper")
	other.Jobs = encryptJobs(t, other.EncryptionKey, []entity.Job{activeJob(entity.Medicine{
		ID: "med-9", Name: "Ibuprofen", SinceDate: dateOf(2024, time.January, 1), FrequencyDays: 7,
	})})

	users := &fakeUserRepo{users: []*entity.User{user, other}}
	requests := &fakeRequestRepo{}
	mailer := &fakeMailer{failRun: true}
	now := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	runner := newRunner(t, users, requests, mailer, &fakeAuditor{}, jobsConfig(), now)

	report, err := runner.RunJobs(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrEmailSend)
	assert.Equal(t, 0, report.RequestsSent)
	assert.Empty(t, requests.records)

	// the failed request must not advance any watermark, and the second user
	// must not have been processed at all
	jobs := decryptJobs(t, user.EncryptionKey, user.Jobs)
	assert.Nil(t, jobs[0].Medicines[0].LastSentDate)
	otherJobs := decryptJobs(t, other.EncryptionKey, other.Jobs)
	assert.Nil(t, otherJobs[0].Medicines[0].LastSentDate)
}

func TestRunJobsSkipsIneligibleEntities(t *testing.T) {
	since := dateOf(2024, time.January, 1)

	inactive := activeJob(entity.Medicine{ID: "m", Name: "Aspirin", SinceDate: since, FrequencyDays: 7})
	inactive.ID = "job-inactive"
	inactive.IsActive = false

	noDoctor := activeJob(entity.Medicine{ID: "m", Name: "Aspirin", SinceDate: since, FrequencyDays: 7})
	noDoctor.ID = "job-no-doctor"
	noDoctor.Doctor.Email = ""

	noSince := activeJob(entity.Medicine{ID: "m", Name: "Aspirin", FrequencyDays: 7})
	noSince.ID = "job-no-since"

	noFrequency := activeJob(entity.Medicine{ID: "m", Name: "Aspirin", SinceDate: since})
	noFrequency.ID = "job-no-frequency"

	user := newTestUser(t, []entity.Job{inactive, noDoctor, noSince, noFrequency})

	noEmail := newTestUser(t, []entity.Job{activeJob(entity.Medicine{
		ID: "m", Name: "Aspirin", SinceDate: since, FrequencyDays: 7,
	})})
	noEmail.ID = "user-no-email"
	noEmail.Email = ""

	users := &fakeUserRepo{users: []*entity.User{user, noEmail}}
	mailer := &fakeMailer{}
	now := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	runner := newRunner(t, users, &fakeRequestRepo{}, mailer, &fakeAuditor{}, jobsConfig(), now)

	report, err := runner.RunJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.RequestsSent)
	assert.Empty(t, mailer.sent)
}

func TestRunJobsMissingTemplateSkipsJob(t *testing.T) {
	user := newTestUser(t, []entity.Job{activeJob(entity.Medicine{
		ID: "med-1", Name: "Aspirin", SinceDate: dateOf(2024, time.January, 1), FrequencyDays: 7,
	})})
	user.TemplateBody = ""
	users := &fakeUserRepo{users: []*entity.User{user}}
	mailer := &fakeMailer{}
	now := time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

	runner := newRunner(t, users, &fakeRequestRepo{}, mailer, &fakeAuditor{}, jobsConfig(), now)

	report, err := runner.RunJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.RequestsSent)
	assert.Empty(t, mailer.sent)
}
