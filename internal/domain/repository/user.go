package repository

import (
	"context"

	"farmatime/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, userID string) (*entity.User, error)
	// FindAll retrieves all users (used by the reminder run).
	FindAll(ctx context.Context) ([]*entity.User, error)
	// Create creates a new user.
	Create(ctx context.Context, user *entity.User) error
	// Update updates an existing user.
	Update(ctx context.Context, user *entity.User) error
	// UpdateJobs persists a user's encrypted jobs blob.
	UpdateJobs(ctx context.Context, userID string, jobsBlob string) error
}
