package service

import (
	"context"

	"farmatime/internal/application/dto"
)

// RequestService defines the interface for reading sent-request records.
type RequestService interface {
	// ListRequests returns the request records for a user, or for all users
	// when userID is empty.
	ListRequests(ctx context.Context, userID string) ([]dto.RequestResponse, error)
}
