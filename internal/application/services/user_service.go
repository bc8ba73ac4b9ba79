package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/collabtodo/core/internal/domain/entities"
	"github.com/collabtodo/core/internal/infrastructure/logger"
	"github.com/collabtodo/core/internal/ports"
)

// UserService handles user profile operations
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile updates the user's display name, the only mutable profile
// field.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req ports.UpdateProfileRequest) (*entities.User, error) {
	if err := s.userRepo.UpdateDisplayName(ctx, id, req.DisplayName); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated user: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", id, "display_name", req.DisplayName)

	user.PasswordHash = ""
	return user, nil
}
