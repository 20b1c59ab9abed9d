package entity

import "time"

// Request is the persistent record of one sent reminder email: a snapshot of
// the parties and medicines at send time plus the provider message id, so a
// request stays auditable even after the job is edited or deleted.
type Request struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	UserID            string `gorm:"column:user_id;index"`
	JobID             string `gorm:"column:job_id"`
	Provider          string `gorm:"column:provider"`
	ProviderMessageID string `gorm:"column:provider_message_id"`
	UserFirstName     string `gorm:"column:user_first_name"`
	UserLastName      string `gorm:"column:user_last_name"`
	PatientFirstName  string `gorm:"column:patient_first_name"`
	PatientLastName   string `gorm:"column:patient_last_name"`
	PatientEmail      string `gorm:"column:patient_email"`
	DoctorName        string `gorm:"column:doctor_name"`
	DoctorEmail       string `gorm:"column:doctor_email"`
	Medicines         string `gorm:"column:medicines;type:text"` // JSON snapshot, []RequestMedicine
	LastStatus        string `gorm:"column:last_status"`
	LastReason        string `gorm:"column:last_reason"`
	CreatedAt         time.Time
}

// TableName specifies the table name for the Request entity.
func (Request) TableName() string {
	return "requests"
}

// RequestMedicine is the snapshot of one medicine inside a Request.
type RequestMedicine struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Since *time.Time `json:"since,omitempty"`
	Every int        `json:"every"`
}
