package notification

import (
	"strings"

	"farmatime/internal/domain/entity"
)

// Request is one outbound reminder email, fully addressed and expanded, plus
// the ids of the medicines whose watermark must be set once the send
// succeeds. The watermark update is the caller's side of the contract: all
// medicines of a request are marked together after a successful send, and a
// failed send marks none of them.
type Request struct {
	To          string
	ToName      string
	FromName    string
	ReplyTo     string
	ReplyToName string
	Subject     string
	HTMLContent string
	MedicineIDs []string
}

// Aggregate builds the notification requests for the due medicines of one
// job. With unify true all due medicines share a single email to the doctor;
// otherwise each due medicine gets its own. No due medicines, no requests.
func Aggregate(job entity.Job, user *entity.User, template entity.EmailTemplate, due []entity.Medicine, unify bool) []Request {
	if len(due) == 0 {
		return nil
	}
	if unify {
		return []Request{build(job, user, template, due)}
	}
	requests := make([]Request, 0, len(due))
	for _, medicine := range due {
		requests = append(requests, build(job, user, template, []entity.Medicine{medicine}))
	}
	return requests
}

func build(job entity.Job, user *entity.User, template entity.EmailTemplate, medicines []entity.Medicine) Request {
	ids := make([]string, 0, len(medicines))
	for _, medicine := range medicines {
		ids = append(ids, medicine.ID)
	}
	fromName := user.FullName()
	if fromName == "" {
		fromName = job.Patient.FullName()
	}
	return Request{
		To:          job.Doctor.Email,
		ToName:      job.Doctor.Name,
		FromName:    fromName,
		ReplyTo:     job.Patient.Email,
		ReplyToName: job.Patient.FullName(),
		Subject:     template.Subject,
		HTMLContent: ExpandTemplate(template.Body, job, medicines, user),
		MedicineIDs: ids,
	}
}

// Placeholder tokens recognized in template bodies. Matching is exact,
// brackets and case included.
const (
	TokenDoctorName   = "[DOCTOR NAME]"
	TokenPatientName  = "[PATIENT NAME]"
	TokenMedicineName = "[MEDICINE NAME]"
	TokenUserName     = "[USER NAME]"
	TokenUserEmail    = "[USER EMAIL]"
)

// ExpandTemplate substitutes the placeholder tokens in body. A token whose
// value is unavailable is left as-is so the gap is visible in the email
// rather than silently blanked.
func ExpandTemplate(body string, job entity.Job, medicines []entity.Medicine, user *entity.User) string {
	names := make([]string, 0, len(medicines))
	for _, medicine := range medicines {
		names = append(names, medicine.Name)
	}

	replacements := map[string]string{
		TokenDoctorName:   job.Doctor.Name,
		TokenPatientName:  job.Patient.FullName(),
		TokenMedicineName: strings.Join(names, "<br />"),
		TokenUserName:     user.FullName(),
		TokenUserEmail:    user.Email,
	}
	for token, value := range replacements {
		if value == "" {
			continue
		}
		body = strings.ReplaceAll(body, token, value)
	}
	return body
}
