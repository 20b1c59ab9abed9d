package service

import (
	"context"
	"encoding/json"
	"fmt"

	"farmatime/internal/application/dto"
	"farmatime/internal/domain/entity"
	"farmatime/internal/domain/repository"
	appErrors "farmatime/internal/pkg/errors"
	"farmatime/internal/pkg/logger"
)

type requestService struct {
	requestRepo repository.RequestRepository
	log         logger.Logger
}

// NewRequestService creates a new instance of RequestService implementation.
func NewRequestService(requestRepo repository.RequestRepository, log logger.Logger) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		log:         log,
	}
}

// ListRequests returns the request records for a user, or for all users when
// userID is empty.
func (s *requestService) ListRequests(ctx context.Context, userID string) ([]dto.RequestResponse, error) {
	var (
		records []*entity.Request
		err     error
	)
	if userID == "" {
		records, err = s.requestRepo.FindAll(ctx)
	} else {
		records, err = s.requestRepo.FindByUserID(ctx, userID)
	}
	if err != nil {
		s.log.Error("Failed to list requests", err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	responses := make([]dto.RequestResponse, 0, len(records))
	for _, record := range records {
		var medicines []entity.RequestMedicine
		if record.Medicines != "" {
			if err := json.Unmarshal([]byte(record.Medicines), &medicines); err != nil {
				s.log.Warn(fmt.Sprintf("Request %d has a malformed medicines snapshot", record.ID))
			}
		}
		responses = append(responses, dto.RequestResponse{
			ID:                record.ID,
			UserID:            record.UserID,
			JobID:             record.JobID,
			Provider:          record.Provider,
			ProviderMessageID: record.ProviderMessageID,
			PatientFirstName:  record.PatientFirstName,
			PatientLastName:   record.PatientLastName,
			PatientEmail:      record.PatientEmail,
			DoctorName:        record.DoctorName,
			DoctorEmail:       record.DoctorEmail,
			Medicines:         medicines,
			LastStatus:        record.LastStatus,
			LastReason:        record.LastReason,
			CreatedAt:         record.CreatedAt,
		})
	}
	return responses, nil
}
