package sqlite

import (
	"context"
	"fmt"

	"farmatime/internal/domain/entity"
	"farmatime/internal/domain/repository"

	"gorm.io/gorm"
)

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a new instance of RequestRepository.
func NewRequestRepository(db *gorm.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

// Create persists the record of a sent reminder.
func (r *requestRepository) Create(ctx context.Context, request *entity.Request) (uint, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return 0, fmt.Errorf("failed to create request record: %w", err)
	}
	return request.ID, nil
}

// FindByUserID retrieves all request records for a user, newest first.
func (r *requestRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Request, error) {
	var requests []*entity.Request
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests for user %s: %w", userID, err)
	}
	return requests, nil
}

// FindAll retrieves all request records, newest first.
func (r *requestRepository) FindAll(ctx context.Context) ([]*entity.Request, error) {
	var requests []*entity.Request
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests: %w", err)
	}
	return requests, nil
}
