package service

import (
	"context"

	"farmatime/internal/application/dto"
	"farmatime/internal/domain/entity"
)

// UserService defines the interface for user and jobs-blob management.
type UserService interface {
	// CreateUser registers a user and derives its encryption key.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	// UpdateJobs encrypts and stores a user's jobs list.
	UpdateJobs(ctx context.Context, userID string, jobs []entity.Job) error
	// GetJobs decrypts and returns a user's jobs list.
	GetJobs(ctx context.Context, userID string) ([]entity.Job, error)
	// CheckJobRequests checks the per-user medicine request quota for a batch
	// of incoming medicines.
	CheckJobRequests(ctx context.Context, userID string, incoming []entity.Medicine) (dto.CheckJobRequestsResponse, error)
}
