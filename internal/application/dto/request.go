package dto

import (
	"time"

	"farmatime/internal/domain/entity"
)

// RequestResponse is the public view of a sent-request record.
type RequestResponse struct {
	ID                uint                     `json:"id"`
	UserID            string                   `json:"userId"`
	JobID             string                   `json:"jobId"`
	Provider          string                   `json:"provider"`
	ProviderMessageID string                   `json:"providerMessageId"`
	PatientFirstName  string                   `json:"patientFirstName"`
	PatientLastName   string                   `json:"patientLastName"`
	PatientEmail      string                   `json:"patientEmail"`
	DoctorName        string                   `json:"doctorName"`
	DoctorEmail       string                   `json:"doctorEmail"`
	Medicines         []entity.RequestMedicine `json:"medicines"`
	LastStatus        string                   `json:"lastStatus"`
	LastReason        string                   `json:"lastReason"`
	CreatedAt         time.Time                `json:"createdAt"`
}

// CheckJobRequestsRequest asks whether a user may add more medicine requests.
type CheckJobRequestsRequest struct {
	UserID    string            `json:"userId"`
	Medicines []entity.Medicine `json:"medicines"`
}

// CheckJobRequestsResponse is the quota check outcome.
type CheckJobRequestsResponse struct {
	Check   bool   `json:"check"`
	Message string `json:"message"`
}

// RunJobsResponse is the reminder run summary.
type RunJobsResponse struct {
	Message string `json:"message"`
}
