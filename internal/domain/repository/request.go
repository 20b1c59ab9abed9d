package repository

import (
	"context"

	"farmatime/internal/domain/entity"
)

// RequestRepository defines the interface for sent-request records.
type RequestRepository interface {
	// Create persists the record of a sent reminder. Returns the record id.
	Create(ctx context.Context, request *entity.Request) (uint, error)
	// FindByUserID retrieves all request records for a user, newest first.
	FindByUserID(ctx context.Context, userID string) ([]*entity.Request, error)
	// FindAll retrieves all request records, newest first.
	FindAll(ctx context.Context) ([]*entity.Request, error)
}
