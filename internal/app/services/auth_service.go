package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindease/mindease-server/internal/app/models"
	"github.com/mindease/mindease-server/internal/app/models/dto"
	"github.com/mindease/mindease-server/internal/app/repositories"
	"github.com/mindease/mindease-server/internal/pkg/apperrors"
	"github.com/mindease/mindease-server/internal/pkg/auth"
	"github.com/mindease/mindease-server/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// AuthService handles registration, login and profile lookups
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	bcryptCost int
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	bcryptCost int,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates an account and signs a token for it.
//
// The email pre-check gives the common case a clean 409; a concurrent
// registration that slips past it is caught by the unique constraint and
// reported the same way.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	userType := models.UserType(req.UserType)
	if userType == "" {
		userType = models.UserTypeStudent
	}
	if !userType.IsValid() {
		return nil, apperrors.NewValidationError("userType must be one of student, counselor, admin")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:            req.Email,
		PasswordHash:     hashedPassword,
		Name:             helpers.NilIfBlank(req.Name),
		UserType:         userType,
		EmergencyContact: helpers.NilIfBlank(req.EmergencyContact),
		Institution:      helpers.NilIfBlank(req.Institution),
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.logger.Warn().Str("email", req.Email).Msg("Concurrent registration hit the email constraint")
			return nil, err
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	user.ID = userID

	s.logger.Info().Int64("userID", userID).Str("userType", string(userType)).Msg("User registered")
	return s.authResponse(user)
}

// Login verifies credentials and, when a role is supplied, that it matches
// the stored one. The role check runs only after the password is verified.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if req.UserType != "" && models.UserType(req.UserType) != user.UserType {
		return nil, apperrors.ErrRoleMismatch
	}

	return s.authResponse(user)
}

// GetProfile returns the account identified by a validated token
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	if userID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return &dto.ProfileResponse{User: dto.ToUserResponse(user)}, nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &dto.AuthResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	}, nil
}
