package dto

import "farmatime/internal/domain/entity"

// CreateUserRequest is the payload to register a user who owns reminder jobs.
type CreateUserRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	TemplateSubject string `json:"templateSubject"`
	TemplateBody    string `json:"templateBody"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateJobsRequest replaces a user's jobs list. The list is encrypted
// server-side before it is stored.
type UpdateJobsRequest struct {
	Jobs []entity.Job `json:"jobs"`
}

// JobsResponse returns a user's decrypted jobs list.
type JobsResponse struct {
	Jobs []entity.Job `json:"jobs"`
}
