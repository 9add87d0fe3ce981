package services

import (
	"context"
	"fmt"

	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/repositories"
	"github.com/rs/zerolog"
)

// CounselorService defines the interface for counselor directory operations
type CounselorService interface {
	ListByInstitution(ctx context.Context, institution string) ([]models.Counselor, error)
}

type counselorServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewCounselorService creates a new counselor service
func NewCounselorService(userRepo repositories.IUserRepository, logger zerolog.Logger) CounselorService {
	return &counselorServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListByInstitution returns every counselor registered with the institution.
// No match yields an empty list.
func (s *counselorServiceImpl) ListByInstitution(ctx context.Context, institution string) ([]models.Counselor, error) {
	counselors, err := s.userRepo.GetCounselorsByInstitution(ctx, institution)
	if err != nil {
		return nil, fmt.Errorf("error listing counselors: %w", err)
	}
	if counselors == nil {
		counselors = []models.Counselor{}
	}
	return counselors, nil
}
