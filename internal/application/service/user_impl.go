package service

import (
	"context"
	"fmt"

	"farmatime/internal/application/dto"
	"farmatime/internal/domain/entity"
	"farmatime/internal/domain/repository"
	"farmatime/internal/pkg/config"
	"farmatime/internal/pkg/crypto"
	appErrors "farmatime/internal/pkg/errors"
	"farmatime/internal/pkg/logger"

	"github.com/google/uuid"
)

type userService struct {
	userRepo repository.UserRepository
	cfg      config.JobsConfig
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, cfg config.JobsConfig, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
		log:      log,
	}
}

// CreateUser registers a user and derives its encryption key from the user id
// and the server secret. The key never changes afterwards because the id is
// immutable.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	if req.Email == "" {
		return dto.UserResponse{}, fmt.Errorf("%w: email is required", appErrors.ErrValidation)
	}

	userID := uuid.NewString()
	user := &entity.User{
		ID:              userID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		EncryptionKey:   crypto.DeriveKey(userID, s.cfg.EncryptionKeySecret),
		TemplateSubject: req.TemplateSubject,
		TemplateBody:    req.TemplateBody,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create user %s", userID), err)
		return dto.UserResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created user %s (%s)", userID, req.Email))
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// UpdateJobs encrypts and stores a user's jobs list.
func (s *userService) UpdateJobs(ctx context.Context, userID string, jobs []entity.Job) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EncryptionKey == "" {
		return fmt.Errorf("%w: %s", appErrors.ErrNoEncryptionKey, userID)
	}

	blob, err := crypto.Encrypt(jobs, user.EncryptionKey)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to encrypt jobs for user %s", userID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}
	if err := s.userRepo.UpdateJobs(ctx, userID, blob); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Updated jobs for user %s (%d job(s))", userID, len(jobs)))
	return nil
}

// GetJobs decrypts and returns a user's jobs list.
func (s *userService) GetJobs(ctx context.Context, userID string) ([]entity.Job, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Jobs == "" {
		return []entity.Job{}, nil
	}
	if user.EncryptionKey == "" {
		return nil, fmt.Errorf("%w: %s", appErrors.ErrNoEncryptionKey, userID)
	}

	var jobs []entity.Job
	if err := crypto.Decrypt(user.Jobs, user.EncryptionKey, &jobs); err != nil {
		s.log.Error(fmt.Sprintf("Failed to decrypt jobs for user %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDecryptionFailed, err)
	}
	return jobs, nil
}

// CheckJobRequests checks whether adding the incoming medicines would exceed
// the per-user maximum of stored medicine requests.
func (s *userService) CheckJobRequests(ctx context.Context, userID string, incoming []entity.Medicine) (dto.CheckJobRequestsResponse, error) {
	jobs, err := s.GetJobs(ctx, userID)
	if err != nil {
		return dto.CheckJobRequestsResponse{}, err
	}

	present := 0
	for _, job := range jobs {
		present += len(job.Medicines)
	}
	total := present + len(incoming)
	limit := s.cfg.MaxRequestsPerUser
	s.log.Info(fmt.Sprintf("requestsCurrent: %d - requestsPresent: %d - requestsTot: %d - requestsMax: %d", len(incoming), present, total, limit))

	if total >= limit {
		return dto.CheckJobRequestsResponse{
			Check:   false,
			Message: fmt.Sprintf("Sorry, currently the maximum number of total medicine requests per user is %d", limit),
		}, nil
	}
	return dto.CheckJobRequestsResponse{
		Check:   true,
		Message: fmt.Sprintf("The number of total medicine requests (%d) is lower than maximum allowed (%d)", total, limit),
	}, nil
}
