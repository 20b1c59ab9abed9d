package entity

import "time"

// User owns the encrypted jobs blob and the single email template used for
// all of that user's reminder emails. Authentication data lives elsewhere;
// this service only reads users and patches their jobs blob.
type User struct {
	ID              string `gorm:"column:user_id;primaryKey"`
	Email           string `gorm:"column:email;index"`
	FirstName       string `gorm:"column:first_name"`
	LastName        string `gorm:"column:last_name"`
	EncryptionKey   string `gorm:"column:encryption_key"`           // base64, derived once at creation
	Jobs            string `gorm:"column:jobs;type:text"`           // encrypted blob, see pkg/crypto
	TemplateSubject string `gorm:"column:template_subject"`
	TemplateBody    string `gorm:"column:template_body;type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// FullName returns "First Last", or the empty string when both are unset.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return ""
}

// EmailTemplate returns the user's reminder template.
func (u *User) EmailTemplate() EmailTemplate {
	return EmailTemplate{Subject: u.TemplateSubject, Body: u.TemplateBody}
}

// EmailTemplate is the subject/body pair expanded for every reminder of a
// user's jobs.
type EmailTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
